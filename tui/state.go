package tui

type state int

const (
	waitingState state = iota
	playerState
	openState
	errorState
)
