package domain

import (
	"sort"
	"time"
)

// TopBooksLimit caps both ranking lists.
const TopBooksLimit = 10

// RankedBook pairs a book snapshot with its score for the active period.
type RankedBook struct {
	Rank     int          `json:"rank"`
	Book     BookSnapshot `json:"book"`
	Likes    int64        `json:"likes"`     // All-time like count
	Score    int          `json:"score"`     // Likes inside the ranking window
	Infinite bool         `json:"infinite"`  // Reserved books display an unbounded counter
}

// WeekWindow returns the Monday 00:00:00.000 UTC start and Sunday
// 23:59:59.999 UTC end of the ISO week containing now.
func WeekWindow(now time.Time) (time.Time, time.Time) {
	utc := now.UTC()
	day := utc.Weekday()
	diff := 1 - int(day)
	if day == time.Sunday {
		diff = -6
	}
	monday := time.Date(utc.Year(), utc.Month(), utc.Day()+diff, 0, 0, 0, 0, time.UTC)
	sundayEnd := monday.AddDate(0, 0, 6).Add(24*time.Hour - time.Millisecond)
	return monday, sundayEnd
}

// TopWeekly ranks books by like timestamps inside the current week's
// Monday-to-Sunday UTC window. Books without a like this week are
// excluded; ties keep the input (store) order.
func TopWeekly(books []*Book, now time.Time) []RankedBook {
	from, to := WeekWindow(now)

	ranked := make([]RankedBook, 0, len(books))
	for _, b := range books {
		score := b.LikesWithin(from, to)
		if score <= 0 {
			continue
		}
		ranked = append(ranked, RankedBook{Book: b.Snapshot(), Likes: b.Likes, Score: score})
	}

	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })
	return finishRanking(ranked)
}

// TopAllTime ranks books by total likes, excluding books nobody liked.
func TopAllTime(books []*Book) []RankedBook {
	ranked := make([]RankedBook, 0, len(books))
	for _, b := range books {
		if b.Likes <= 0 {
			continue
		}
		ranked = append(ranked, RankedBook{Book: b.Snapshot(), Likes: b.Likes, Score: int(b.Likes)})
	}

	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Likes > ranked[j].Likes })
	return finishRanking(ranked)
}

func finishRanking(ranked []RankedBook) []RankedBook {
	if len(ranked) > TopBooksLimit {
		ranked = ranked[:TopBooksLimit]
	}
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}
