package types

import (
	"fmt"
	"strconv"
	"strings"
)

// BoundaryKind tags a border segment with the family of boundary condition applied on it
type BoundaryKind uint8

const (
	BC_Null      BoundaryKind = iota // border is declared but carries no condition
	BC_Dirichlet                     // essential: prescribed value
	BC_Neumann                       // natural: prescribed flux
	BC_Newton                        // mixed: beta*(value - u) flux
)

var BCNameMap = map[string]BoundaryKind{
	"null":      BC_Null,
	"none":      BC_Null,
	"dirichlet": BC_Dirichlet,
	"essential": BC_Dirichlet,
	"first":     BC_Dirichlet,
	"neumann":   BC_Neumann,
	"neuman":    BC_Neumann,
	"natural":   BC_Neumann,
	"second":    BC_Neumann,
	"newton":    BC_Newton,
	"robin":     BC_Newton,
	"mixed":     BC_Newton,
	"third":     BC_Newton,
}

func (bk BoundaryKind) String() string {
	switch bk {
	case BC_Null:
		return "Null"
	case BC_Dirichlet:
		return "Dirichlet"
	case BC_Neumann:
		return "Neumann"
	case BC_Newton:
		return "Newton"
	}
	return "BoundaryKind(" + strconv.Itoa(int(bk)) + ")"
}

// ParseBoundaryKind accepts either a name from BCNameMap (case insensitive) or the
// integer code 0..3
func ParseBoundaryKind(token string) (bk BoundaryKind, err error) {
	var (
		label = strings.ToLower(strings.TrimSpace(token))
		ok    bool
	)
	if bk, ok = BCNameMap[label]; ok {
		return
	}
	code, convErr := strconv.Atoi(label)
	if convErr != nil || code < int(BC_Null) || code > int(BC_Newton) {
		err = fmt.Errorf("unknown boundary kind: %q", token)
		return
	}
	bk = BoundaryKind(code)
	return
}
