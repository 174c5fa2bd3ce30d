// Package ocf implements the Open Cluster Framework resource agent
// contract: return codes, OCF_RESKEY_* parameter access, and the
// meta-data document the cluster manager introspects.
package ocf

import "fmt"

// ReturnCode is an OCF resource agent return code. The cluster manager
// reads it as the process exit status and decides whether to retry,
// fence, or relocate the resource.
type ReturnCode int

const (
	Success          ReturnCode = 0
	ErrGeneric       ReturnCode = 1
	ErrArgs          ReturnCode = 2
	ErrUnimplemented ReturnCode = 3
	ErrPerm          ReturnCode = 4
	ErrInstalled     ReturnCode = 5
	ErrConfigured    ReturnCode = 6
	NotRunning       ReturnCode = 7
)

func (c ReturnCode) String() string {
	switch c {
	case Success:
		return "success"
	case ErrGeneric:
		return "generic error"
	case ErrArgs:
		return "invalid arguments"
	case ErrUnimplemented:
		return "unimplemented"
	case ErrPerm:
		return "insufficient permissions"
	case ErrInstalled:
		return "not installed"
	case ErrConfigured:
		return "misconfigured"
	case NotRunning:
		return "not running"
	}
	return fmt.Sprintf("unknown (%d)", int(c))
}

// ExitError carries a non-zero return code through cobra's error path
// so Execute can map it to the process exit status.
type ExitError struct {
	Code ReturnCode
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit %d: %s", int(e.Code), e.Code)
}

// Exit returns nil for Success and an ExitError otherwise, matching
// what a cobra RunE is expected to return.
func Exit(code ReturnCode) error {
	if code == Success {
		return nil
	}
	return &ExitError{Code: code}
}
