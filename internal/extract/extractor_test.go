package extract

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ringgitlab/duit/internal/category"
	"github.com/ringgitlab/duit/internal/model"
)

func newTestExtractor() *Extractor {
	return NewExtractor(category.NewCategorizer())
}

func TestExtract(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		wantAmount   string
		wantDesc     string
		wantCategory model.Category
	}{
		{
			name:         "currency amount with preposition",
			input:        "RM10 for lunch",
			wantAmount:   "10",
			wantDesc:     "lunch",
			wantCategory: model.CategoryFood,
		},
		{
			name:         "spent verb leads",
			input:        "I spent RM10 on nasi lemak",
			wantAmount:   "10",
			wantDesc:     "nasi lemak",
			wantCategory: model.CategoryFood,
		},
		{
			name:         "purchase verb before description",
			input:        "bought shoes for RM120",
			wantAmount:   "120",
			wantDesc:     "shoes",
			wantCategory: model.CategoryShopping,
		},
		{
			name:         "rent maps to housing",
			input:        "RM500 for rent",
			wantAmount:   "500",
			wantDesc:     "rent",
			wantCategory: model.CategoryHousing,
		},
		{
			name:         "dollar sign accepted",
			input:        "$25 for petrol",
			wantAmount:   "25",
			wantDesc:     "petrol",
			wantCategory: model.CategoryTransport,
		},
		{
			name:         "trailing amount",
			input:        "lunch RM12.50",
			wantAmount:   "12.5",
			wantDesc:     "lunch",
			wantCategory: model.CategoryFood,
		},
		{
			name:         "thousands separator",
			input:        "paid RM1,200 for flight tickets",
			wantAmount:   "1200",
			wantDesc:     "flight tickets",
			wantCategory: model.CategoryTransport,
		},
		{
			name:         "unknown description falls to other",
			input:        "RM30 for mystery box",
			wantAmount:   "30",
			wantDesc:     "mystery box",
			wantCategory: model.CategoryOther,
		},
	}

	extractor := newTestExtractor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entity, err := extractor.Extract(tt.input, nil)
			require.NoError(t, err)
			require.True(t, entity.HasAmount, "expected an amount in %q", tt.input)
			assert.True(t, entity.Amount.Equal(decimal.RequireFromString(tt.wantAmount)),
				"amount = %s, want %s", entity.Amount, tt.wantAmount)
			assert.Equal(t, tt.wantDesc, entity.Description)
			assert.Equal(t, tt.wantCategory, entity.Category)
		})
	}
}

func TestExtractAmountOnly(t *testing.T) {
	extractor := newTestExtractor()

	entity, err := extractor.Extract("RM50", nil)
	require.NoError(t, err)
	require.True(t, entity.HasAmount)
	assert.True(t, entity.Amount.Equal(decimal.NewFromInt(50)))
	assert.Empty(t, entity.Description)
	assert.Empty(t, entity.Category)
}

func TestExtractRejectsNonExpenses(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"too short", "hi"},
		{"no letters", "12345"},
		{"no amount and no spending keyword", "what a lovely day"},
		{"empty", ""},
		{"punctuation only", "?!?!"},
	}

	extractor := newTestExtractor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entity, err := extractor.Extract(tt.input, nil)
			require.NoError(t, err)
			assert.True(t, entity.IsEmpty(), "expected no entity for %q, got %+v", tt.input, entity)
		})
	}
}

func TestExtractUsesCustomCategories(t *testing.T) {
	extractor := newTestExtractor()

	entity, err := extractor.Extract("RM30 for mahjong night", []string{"mahjong"})
	require.NoError(t, err)
	assert.Equal(t, model.Category("mahjong"), entity.Category)
}

func TestExtractIsDeterministic(t *testing.T) {
	extractor := newTestExtractor()

	first, err := extractor.Extract("spent RM42 on groceries", nil)
	require.NoError(t, err)
	second, err := extractor.Extract("spent RM42 on groceries", nil)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestExtractMultiple(t *testing.T) {
	extractor := newTestExtractor()

	t.Run("comma separated", func(t *testing.T) {
		entities, err := extractor.ExtractMultiple("I spent RM10 on nasi lemak, RM5 on kopi", nil)
		require.NoError(t, err)
		require.Len(t, entities, 2)

		assert.True(t, entities[0].Amount.Equal(decimal.NewFromInt(10)))
		assert.Equal(t, "nasi lemak", entities[0].Description)
		assert.Equal(t, model.CategoryFood, entities[0].Category)

		assert.True(t, entities[1].Amount.Equal(decimal.NewFromInt(5)))
		assert.Equal(t, "kopi", entities[1].Description)
		assert.Equal(t, model.CategoryFood, entities[1].Category)
	})

	t.Run("conjunction splits segments with two amounts", func(t *testing.T) {
		entities, err := extractor.ExtractMultiple("RM10 for lunch and RM20 for grab, RM8 for boba", nil)
		require.NoError(t, err)
		require.Len(t, entities, 3)
		assert.Equal(t, "lunch", entities[0].Description)
		assert.Equal(t, "grab", entities[1].Description)
		assert.Equal(t, model.CategoryTransport, entities[1].Category)
		assert.Equal(t, "boba", entities[2].Description)
	})

	t.Run("single expense yields one entity", func(t *testing.T) {
		entities, err := extractor.ExtractMultiple("RM15 for dinner", nil)
		require.NoError(t, err)
		require.Len(t, entities, 1)
		assert.Equal(t, "dinner", entities[0].Description)
	})

	t.Run("rejected input yields nothing", func(t *testing.T) {
		entities, err := extractor.ExtractMultiple("hello there friend", nil)
		require.NoError(t, err)
		assert.Empty(t, entities)
	})

	t.Run("segments without amounts are skipped", func(t *testing.T) {
		entities, err := extractor.ExtractMultiple("RM12 for breakfast, it was great", nil)
		require.NoError(t, err)
		require.Len(t, entities, 1)
		assert.Equal(t, "breakfast", entities[0].Description)
	})
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "10", want: "10"},
		{input: "12.50", want: "12.5"},
		{input: "1,200", want: "1200"},
		{input: "RM 99", want: "99"},
		{input: "$7.25", want: "7.25"},
		{input: "abc", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			amount, err := parseAmount(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, amount.Equal(decimal.RequireFromString(tt.want)),
				"amount = %s, want %s", amount, tt.want)
		})
	}
}

func TestCleanDescription(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"for lunch", "lunch"},
		{"on at the mamak", "the mamak"},
		{"buying groceries", "groceries"},
		{"rm10 leftover mention", "leftover mention"},
		{"  spaced   out  ", "spaced out"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanDescription(tt.input))
		})
	}
}
