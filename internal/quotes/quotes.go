// Package quotes serves the daily motivational quote: a static table with
// a deterministic day-of-year pick, so the quote is stable all day and
// rolls over at midnight.
package quotes

import (
	"encoding/json"
	"net/http"
	"time"
)

type Quote struct {
	Text   string `json:"text"`
	Author string `json:"author"`
}

var catalog = []Quote{
	{"The secret of getting ahead is getting started.", "Mark Twain"},
	{"Focus on being productive instead of busy.", "Tim Ferriss"},
	{"The only way to do great work is to love what you do.", "Steve Jobs"},
	{"Small daily improvements are the key to staggering long-term results.", "Unknown"},
	{"Your future is created by what you do today, not tomorrow.", "Robert Kiyosaki"},
	{"The way to get started is to quit talking and begin doing.", "Walt Disney"},
	{"Don't watch the clock; do what it does. Keep going.", "Sam Levenson"},
	{"Success is the sum of small efforts repeated day in and day out.", "Robert Collier"},
	{"The only limit to our realization of tomorrow is our doubts of today.", "Franklin D. Roosevelt"},
	{"What you do today can improve all your tomorrows.", "Ralph Marston"},
	{"Start where you are. Use what you have. Do what you can.", "Arthur Ashe"},
	{"Productivity is never an accident. It is always the result of a commitment to excellence.", "Paul J. Meyer"},
	{"The best time to plant a tree was 20 years ago. The second best time is now.", "Chinese Proverb"},
	{"You don't have to be great to start, but you have to start to be great.", "Zig Ziglar"},
	{"Action is the foundational key to all success.", "Pablo Picasso"},
	{"The difference between ordinary and extraordinary is that little extra.", "Jimmy Johnson"},
	{"Every accomplishment starts with the decision to try.", "John F. Kennedy"},
	{"It does not matter how slowly you go as long as you do not stop.", "Confucius"},
	{"The harder you work for something, the greater you'll feel when you achieve it.", "Unknown"},
	{"Dream big and dare to fail.", "Norman Vaughan"},
	{"Your time is limited, don't waste it living someone else's life.", "Steve Jobs"},
	{"The only person you are destined to become is the person you decide to be.", "Ralph Waldo Emerson"},
	{"Believe you can and you're halfway there.", "Theodore Roosevelt"},
	{"Do something today that your future self will thank you for.", "Sean Patrick Flanery"},
	{"Great things never come from comfort zones.", "Unknown"},
	{"The mind is everything. What you think you become.", "Buddha"},
	{"Strive not to be a success, but rather to be of value.", "Albert Einstein"},
	{"I find that the harder I work, the more luck I seem to have.", "Thomas Jefferson"},
	{"Success usually comes to those who are too busy to be looking for it.", "Henry David Thoreau"},
	{"Don't be afraid to give up the good to go for the great.", "John D. Rockefeller"},
	{"Quality is not an act, it is a habit.", "Aristotle"},
}

// ForDay returns the quote for t's calendar day.
func ForDay(t time.Time) Quote {
	return catalog[t.YearDay()%len(catalog)]
}

func Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(ForDay(time.Now()))
	}
}
