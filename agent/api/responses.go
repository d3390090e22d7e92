package api

import (
	"net/http"

	"github.com/absmach/supermq"
	"github.com/absmach/warden/agent"
	"github.com/absmach/warden/monitor"
	"github.com/absmach/warden/system"
)

var (
	_ supermq.Response = (*infoRes)(nil)
	_ supermq.Response = (*metricsRes)(nil)
	_ supermq.Response = (*commandRes)(nil)
)

type infoRes struct {
	agent.Info
}

func (r infoRes) Code() int {
	return http.StatusOK
}

func (r infoRes) Headers() map[string]string {
	return map[string]string{}
}

func (r infoRes) Empty() bool {
	return false
}

type metricsRes struct {
	monitor.Snapshot
}

func (r metricsRes) Code() int {
	return http.StatusOK
}

func (r metricsRes) Headers() map[string]string {
	return map[string]string{}
}

func (r metricsRes) Empty() bool {
	return false
}

type commandRes struct {
	system.Result
}

func (r commandRes) Code() int {
	if !r.Success {
		return http.StatusInternalServerError
	}

	return http.StatusOK
}

func (r commandRes) Headers() map[string]string {
	return map[string]string{}
}

func (r commandRes) Empty() bool {
	return false
}
