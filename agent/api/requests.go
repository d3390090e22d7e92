package api

// All agent operations are parameterless; the bearer credential is consumed
// by the transport middleware before an endpoint runs.
type emptyReq struct{}

func (r emptyReq) validate() error {
	return nil
}
