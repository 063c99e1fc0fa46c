package render

// Surface is an ordered set of cards, or a placeholder message when there is
// nothing to show. The zero value is an empty surface.
type Surface struct {
	cards       []Card
	placeholder string
}

// Clear removes all cards and any placeholder.
func (s *Surface) Clear() {
	s.cards = nil
	s.placeholder = ""
}

// Append adds cards after the existing ones. Adding at least one card drops
// the placeholder.
func (s *Surface) Append(cards ...Card) {
	if len(cards) == 0 {
		return
	}
	s.placeholder = ""
	s.cards = append(s.cards, cards...)
}

// SetPlaceholder replaces the surface content with msg.
func (s *Surface) SetPlaceholder(msg string) {
	s.cards = nil
	s.placeholder = msg
}

// Placeholder returns the message shown instead of cards, if any.
func (s *Surface) Placeholder() string {
	return s.placeholder
}

// Len returns the number of cards.
func (s *Surface) Len() int {
	return len(s.cards)
}

// Card returns the i-th card.
func (s *Surface) Card(i int) (Card, bool) {
	if i < 0 || i >= len(s.cards) {
		return Card{}, false
	}
	return s.cards[i], true
}

// Cards returns a copy of the cards in order.
func (s *Surface) Cards() []Card {
	out := make([]Card, len(s.cards))
	copy(out, s.cards)
	return out
}

// SetFavorited updates the glyph state of every card bound to id in place and
// returns how many cards changed.
func (s *Surface) SetFavorited(id string, favorited bool) int {
	n := 0
	for i := range s.cards {
		if s.cards[i].ID() == id && s.cards[i].Favorited != favorited {
			s.cards[i].Favorited = favorited
			n++
		}
	}
	return n
}

// Sync recomputes every card's favorite state with isFavorited.
func (s *Surface) Sync(isFavorited func(id string) bool) int {
	n := 0
	for i := range s.cards {
		if fav := isFavorited(s.cards[i].ID()); fav != s.cards[i].Favorited {
			s.cards[i].Favorited = fav
			n++
		}
	}
	return n
}
