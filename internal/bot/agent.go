package bot

import (
	"errors"

	"shisanshui/internal/domain"
)

// ErrNoArrangement is returned when the search cannot produce a legal split.
var ErrNoArrangement = errors.New("no legal arrangement found")

// Agent is an autonomous player filling the second seat.
type Agent struct {
	ID string
}

// NewAgent creates an agent for the given bot user ID.
func NewAgent(id string) *Agent {
	return &Agent{ID: id}
}

// Arrange produces the agent's lane split for its dealt hand. The caller
// skips this entirely when the deal carried a special hand.
func (a *Agent) Arrange(dealt []domain.Card) (domain.Arrangement, error) {
	arr, ok := BestArrangement(dealt)
	if !ok {
		return domain.Arrangement{}, ErrNoArrangement
	}
	return arr, nil
}
