package identity

// Register link window, inclusive on both ends
const (
	RegisterOpensAtHour  = 8
	RegisterClosesAtHour = 20
)

// ShowRegister reports whether the login page offers the register link at the given local hour.
// It only controls presentation; registration itself is always accepted.
func ShowRegister(hour int) bool {
	return ShowRegisterWithin(hour, RegisterOpensAtHour, RegisterClosesAtHour)
}

// ShowRegisterWithin is ShowRegister with a configurable window
func ShowRegisterWithin(hour, opens, closes int) bool {
	return opens <= hour && hour <= closes
}
