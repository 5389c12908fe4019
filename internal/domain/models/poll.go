package models

const (
	PollDown     = "down"
	PollStable   = "stable"
	PollUpMild   = "up_mild"
	PollUpStrong = "up_strong"
)

// PollOptions lists the options in display order.
var PollOptions = []string{PollDown, PollStable, PollUpMild, PollUpStrong}

// PollSeed are the counts a fresh poll starts from.
var PollSeed = map[string]int64{
	PollDown:     12,
	PollStable:   38,
	PollUpMild:   35,
	PollUpStrong: 15,
}

type PollResult struct {
	Counts map[string]int64 `json:"counts"`
	Total  int64            `json:"total"`
}

type VoteRequest struct {
	OptionID string `json:"optionId" validate:"required,oneof=down stable up_mild up_strong"`
}
