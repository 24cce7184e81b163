package common

import "time"

// State is where a user stands in the conversation
type State string

const (
	StateIdle           State = ""
	StateChooseProvider State = "choose_provider"
	StateChooseRoom     State = "choose_room"
	StatePredicting     State = "predicting"
	StateSlotChooseGame State = "slot_choose_game"
	StateSlotChooseRoom State = "slot_choose_room"
	StateSlotInputBet   State = "slot_input_bet"
	StateSlotInputRate  State = "slot_input_rate"
	StateInputCode      State = "input_code"
)

// Session is the conversational state of one user
type Session struct {
	UserID    string
	State     State
	Provider  string
	Room      string
	Game      string
	TotalBet  float64
	UpdatedAt time.Time
}

// Reset returns the session to idle, dropping every flow field
func (s *Session) Reset() {
	*s = Session{UserID: s.UserID, UpdatedAt: s.UpdatedAt}
}
