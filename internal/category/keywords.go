package category

import "github.com/ringgitlab/duit/internal/model"

// keywordTable binds a category to the substrings that select it.
type keywordTable struct {
	category model.Category
	keywords []string
}

// defaultKeywordTables returns the keyword tables in their canonical order.
// The order is load-bearing: a description matching keywords in two categories
// resolves to whichever table appears first. There is deliberately no scoring.
func defaultKeywordTables() []keywordTable {
	return []keywordTable{
		{
			category: model.CategoryFood,
			keywords: []string{
				"food", "lunch", "dinner", "breakfast", "brunch", "supper", "snack",
				"makan", "nasi", "mee", "kopi", "teh tarik", "teh", "milo", "roti",
				"mamak", "kfc", "mcd", "mcdonald", "pizza", "burger", "satay",
				"laksa", "cendol", "restaurant", "cafe", "kedai makan", "hawker",
				"grabfood", "foodpanda", "groceries", "grocery", "pasar", "market",
				"tesco", "aeon", "giant", "99 speedmart", "drink", "coffee", "tea",
				"bubble tea", "boba",
			},
		},
		{
			category: model.CategoryTransport,
			keywords: []string{
				"grab", "taxi", "bus", "train", "lrt", "mrt", "ktm", "monorail",
				"petrol", "fuel", "diesel", "parking", "toll", "touch n go", "tng",
				"car wash", "flight", "airasia", "mas", "uber", "e-hailing",
				"motorcycle", "bike", "service kereta",
			},
		},
		{
			category: model.CategoryEntertainment,
			keywords: []string{
				"movie", "cinema", "gsc", "tgv", "netflix", "spotify", "youtube",
				"game", "gaming", "steam", "concert", "karaoke", "bowling",
				"theme park", "genting", "sunway lagoon", "subscription",
			},
		},
		{
			category: model.CategoryShopping,
			keywords: []string{
				"shopee", "lazada", "taobao", "zalora", "shirt", "shoes", "clothes",
				"clothing", "dress", "bag", "watch", "mall", "midvalley", "pavilion",
				"klcc", "uniqlo", "h&m", "ikea", "mr diy", "gift", "perfume",
			},
		},
		{
			category: model.CategoryUtilities,
			keywords: []string{
				"electric", "electricity", "tnb", "water bill", "air bill", "syabas",
				"internet", "unifi", "maxis", "celcom", "digi", "umobile", "astro",
				"phone bill", "mobile bill", "wifi", "gas bill", "indah water",
				"utility", "utilities", "bill",
			},
		},
		{
			category: model.CategoryHousing,
			keywords: []string{
				"rent", "sewa", "mortgage", "house", "apartment", "condo",
				"maintenance fee", "management fee", "deposit rumah", "furniture",
				"renovation",
			},
		},
		{
			category: model.CategoryHealthcare,
			keywords: []string{
				"doctor", "clinic", "klinik", "hospital", "medicine", "ubat",
				"pharmacy", "farmasi", "guardian", "watsons", "dental", "dentist",
				"insurance", "takaful", "vitamin", "checkup",
			},
		},
		{
			category: model.CategoryEducation,
			keywords: []string{
				"book", "buku", "course", "class", "tuition", "yuran", "school",
				"university", "college", "exam", "udemy", "workshop", "seminar",
				"stationery", "ptptn",
			},
		},
	}
}
