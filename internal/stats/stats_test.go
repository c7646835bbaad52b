package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hayatroid/daily-llm/internal/model"
)

func conv(date, name string, exchanges int, code bool, tags ...string) *model.Entry {
	return &model.Entry{
		Slug:      date + "/" + name,
		Date:      date,
		Name:      name,
		Exchanges: exchanges,
		HasCode:   code,
		Meta:      model.Meta{Tags: tags},
	}
}

func testSite() *model.Site {
	return model.NewSite([]*model.Entry{
		conv("2024-01-15", "001-a", 4, true, "go", "web"),
		conv("2024-01-15", "002-b", 2, false, "web", "css"),
		conv("2024-01-15", "003-c", 6, false),
		conv("2024-01-16", "001-d", 3, true, "rust"),
		{Slug: "2024-01-15/summary", Date: "2024-01-15", Name: "summary", Kind: model.KindSummary, Exchanges: 99},
	})
}

func TestForDate(t *testing.T) {
	st := ForDate(testSite(), "2024-01-15")

	assert.Equal(t, DateStats{
		Conversations:  3,
		TotalExchanges: 12,
		TopicTags:      []string{"go", "web", "css"},
		TopicCount:     3,
		HasCodeCount:   1,
		CodePercent:    33,
	}, st)
}

func TestForDateEmpty(t *testing.T) {
	assert.Equal(t, DateStats{}, ForDate(testSite(), "2030-01-01"))
}

func TestGlobal(t *testing.T) {
	assert.Equal(t, GlobalStats{
		TotalConversations:          4,
		TotalExchanges:              15,
		TotalDates:                  2,
		TotalTopics:                 4,
		HasCodeCount:                2,
		CodePercent:                 50,
		AvgConversationsPerDay:      2,
		AvgExchangesPerConversation: 4,
	}, Global(testSite()))
}

func TestGlobalEmpty(t *testing.T) {
	assert.Equal(t, GlobalStats{}, Global(model.NewSite(nil)))
}
