package respond

import "github.com/ringgitlab/duit/internal/model"

// savingTips holds one canned tip per category for the {saving_tips}
// placeholder.
var savingTips = map[model.Category]string{
	model.CategoryFood:          "Cooking at home twice a week can easily save RM100+ a month compared to eating out.",
	model.CategoryTransport:     "Plan errands into one trip and compare Grab against LRT/MRT for your regular routes.",
	model.CategoryEntertainment: "Audit your subscriptions — cancel the ones you haven't opened this month.",
	model.CategoryShopping:      "Leave items in the cart for 48 hours before buying; most impulse urges pass.",
	model.CategoryUtilities:     "Switch to a lighter phone/internet plan if you're not using the quota you pay for.",
	model.CategoryHousing:       "If rent is above a third of your income, it's worth negotiating or hunting at renewal time.",
	model.CategoryHealthcare:    "Generic medicines at the pharmacy are usually as effective and far cheaper.",
	model.CategoryEducation:     "Check the library and free course platforms before paying for books or classes.",
	model.CategoryOther:         "Track every expense for two weeks — the leaks usually show up fast.",
}

// TipFor returns the canned saving tip for a category, defaulting to the
// general one.
func TipFor(category model.Category) string {
	if tip, ok := savingTips[category]; ok {
		return tip
	}
	return savingTips[model.CategoryOther]
}
