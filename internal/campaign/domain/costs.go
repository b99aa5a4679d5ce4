package domain

// teamFees is the step function from concepting-team headcount to fee.
var teamFees = map[int]int{
	0: 0,
	2: 25_000,
	3: 45_000,
	4: 70_000,
}

// TeamFeeForHeadcount returns the fee for a team of the given size. Teams of
// zero members (cleared) cost nothing; valid working teams have 2 to 4
// members. Other sizes are rejected with ErrInvalidTeamSize.
func TeamFeeForHeadcount(headcount int) (int, error) {
	fee, ok := teamFees[headcount]
	if !ok {
		return 0, ErrInvalidTeamSize
	}
	return fee, nil
}
