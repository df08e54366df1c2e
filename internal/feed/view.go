package feed

import (
	"sync"

	"github.com/SergeyParamoshkin/cardfeed/internal/model"
)

// Status describes what the feed area shows besides the cards.
type Status int

const (
	// Loading is the state before the first fetch completes.
	Loading Status = iota
	// Ready means the cards reflect a successful fetch.
	Ready
	// Failed shows the fixed empty/error placeholder.
	Failed
)

// Card is one rendered article.
type Card struct {
	Article model.Article
	Like    Like
	Hidden  bool
}

// View is the rendered feed. It is safe for concurrent use.
type View struct {
	mu     sync.RWMutex
	cards  []Card
	query  string
	status Status
}

func NewView() *View {
	return &View{}
}

// Replace renders articles in the given order, dropping every previous card
// and like toggle. The current search is applied to the new cards.
func (v *View) Replace(articles []model.Article) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.cards = make([]Card, 0, len(articles))
	for _, a := range articles {
		v.cards = append(v.cards, newCard(a, v.query))
	}
	v.status = Ready
}

// Fail clears the feed and shows the placeholder.
func (v *View) Fail() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.cards = nil
	v.status = Failed
}

// Prepend inserts a server confirmed article at the front of the feed.
func (v *View) Prepend(a model.Article) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.cards = append([]Card{newCard(a, v.query)}, v.cards...)
	v.status = Ready
}

// Search hides every card that does not match query. Articles are untouched.
func (v *View) Search(query string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.query = query

	visible := make(map[string]struct{}, len(v.cards))
	for _, id := range Filter(v.articles(), query) {
		visible[id] = struct{}{}
	}

	for i := range v.cards {
		_, ok := visible[v.cards[i].Article.ID]
		v.cards[i].Hidden = !ok
	}
}

// ToggleLike flips the like button of the card with id. It reports false
// when no such card is rendered.
func (v *View) ToggleLike(id string) (Like, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	for i := range v.cards {
		if v.cards[i].Article.ID == id {
			v.cards[i].Like = v.cards[i].Like.Toggle()

			return v.cards[i].Like, true
		}
	}

	return Like{}, false
}

// Cards returns a copy of every rendered card, hidden ones included.
func (v *View) Cards() []Card {
	v.mu.RLock()
	defer v.mu.RUnlock()

	out := make([]Card, len(v.cards))
	copy(out, v.cards)

	return out
}

// Visible returns the cards not hidden by the search.
func (v *View) Visible() []Card {
	v.mu.RLock()
	defer v.mu.RUnlock()

	out := make([]Card, 0, len(v.cards))
	for _, c := range v.cards {
		if !c.Hidden {
			out = append(out, c)
		}
	}

	return out
}

// NoResults reports whether the "no results" placeholder is shown: the feed
// is loaded and no card is visible.
func (v *View) NoResults() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()

	if v.status != Ready {
		return false
	}

	for _, c := range v.cards {
		if !c.Hidden {
			return false
		}
	}

	return true
}

func (v *View) Status() Status {
	v.mu.RLock()
	defer v.mu.RUnlock()

	return v.status
}

func (v *View) Query() string {
	v.mu.RLock()
	defer v.mu.RUnlock()

	return v.query
}

func (v *View) articles() []model.Article {
	out := make([]model.Article, 0, len(v.cards))
	for _, c := range v.cards {
		out = append(out, c.Article)
	}

	return out
}

// newCard starts the like counter at the server's count.
func newCard(a model.Article, query string) Card {
	return Card{
		Article: a,
		Like:    Like{State: Unpressed, Count: a.Likes},
		Hidden:  !matches(a, normalizeQuery(query)),
	}
}
