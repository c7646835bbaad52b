// Package stats aggregates conversation counts, exchanges, topics and code
// usage per date and across the whole site.
package stats

import (
	"math"

	"github.com/hayatroid/daily-llm/internal/model"
)

type DateStats struct {
	Conversations  int
	TotalExchanges int
	TopicTags      []string
	TopicCount     int
	HasCodeCount   int
	CodePercent    int
}

type GlobalStats struct {
	TotalConversations          int
	TotalExchanges              int
	TotalDates                  int
	TotalTopics                 int
	HasCodeCount                int
	CodePercent                 int
	AvgConversationsPerDay      int
	AvgExchangesPerConversation int
}

func ForDate(site *model.Site, date string) DateStats {
	convs := site.ConversationsOn(date)

	var st DateStats
	seen := make(map[string]bool)
	for _, c := range convs {
		st.TotalExchanges += c.Exchanges
		if c.HasCode {
			st.HasCodeCount++
		}
		for _, t := range c.Meta.Tags {
			if !seen[t] {
				seen[t] = true
				st.TopicTags = append(st.TopicTags, t)
			}
		}
	}
	st.Conversations = len(convs)
	st.TopicCount = len(st.TopicTags)
	st.CodePercent = percent(st.HasCodeCount, st.Conversations)
	return st
}

func Global(site *model.Site) GlobalStats {
	convs := site.Conversations()

	var st GlobalStats
	dates := make(map[string]bool)
	topics := make(map[string]bool)
	for _, c := range convs {
		dates[c.Date] = true
		st.TotalExchanges += c.Exchanges
		if c.HasCode {
			st.HasCodeCount++
		}
		for _, t := range c.Meta.Tags {
			topics[t] = true
		}
	}
	st.TotalConversations = len(convs)
	st.TotalDates = len(dates)
	st.TotalTopics = len(topics)
	st.CodePercent = percent(st.HasCodeCount, st.TotalConversations)
	st.AvgConversationsPerDay = ratio(st.TotalConversations, st.TotalDates)
	st.AvgExchangesPerConversation = ratio(st.TotalExchanges, st.TotalConversations)
	return st
}

func percent(n, total int) int {
	return ratio(n*100, total)
}

// ratio rounds half away from zero and is 0 for an empty denominator.
func ratio(n, d int) int {
	if d == 0 {
		return 0
	}
	return int(math.Round(float64(n) / float64(d)))
}
