package kettle

// FillingError reports an invalid requested water volume.
type FillingError struct {
	Reason string
}

func (e *FillingError) Error() string { return e.Reason }

// SwitchError reports a power toggle requested in an invalid state.
type SwitchError struct {
	Reason string
}

func (e *SwitchError) Error() string { return e.Reason }

// PouringError reports a pour requested while the kettle is heating.
type PouringError struct {
	Reason string
}

func (e *PouringError) Error() string { return e.Reason }
