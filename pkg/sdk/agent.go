package sdk

import (
	"encoding/json"
	"net/http"

	"github.com/absmach/warden/monitor"
	"github.com/absmach/warden/system"
)

const (
	healthEndpoint  = "health"
	infoEndpoint    = "info"
	metricsEndpoint = "metrics"
	updateEndpoint  = "update"
	rebootEndpoint  = "reboot"
)

func (sdk *wardenSDK) Health() (HealthInfo, error) {
	body, err := sdk.processRequest(http.MethodGet, sdk.agentURL+"/"+healthEndpoint, http.StatusOK)
	if err != nil {
		return HealthInfo{}, err
	}

	var health HealthInfo
	if err := json.Unmarshal(body, &health); err != nil {
		return HealthInfo{}, err
	}

	return health, nil
}

func (sdk *wardenSDK) Info() (ServiceInfo, error) {
	body, err := sdk.processRequest(http.MethodGet, sdk.agentURL+"/"+infoEndpoint, http.StatusOK)
	if err != nil {
		return ServiceInfo{}, err
	}

	var info ServiceInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return ServiceInfo{}, err
	}

	return info, nil
}

func (sdk *wardenSDK) Metrics() (monitor.Snapshot, error) {
	body, err := sdk.processRequest(http.MethodGet, sdk.agentURL+"/"+metricsEndpoint, http.StatusOK)
	if err != nil {
		return monitor.Snapshot{}, err
	}

	var snapshot monitor.Snapshot
	if err := json.Unmarshal(body, &snapshot); err != nil {
		return monitor.Snapshot{}, err
	}

	return snapshot, nil
}

func (sdk *wardenSDK) Update() (system.Result, error) {
	// A failed update still carries operator-relevant output, so both
	// status codes are decoded.
	body, err := sdk.processRequest(http.MethodPost, sdk.agentURL+"/"+updateEndpoint, http.StatusOK, http.StatusInternalServerError)
	if err != nil {
		return system.Result{}, err
	}

	var result system.Result
	if err := json.Unmarshal(body, &result); err != nil {
		return system.Result{}, err
	}

	return result, nil
}

func (sdk *wardenSDK) Reboot() (system.Result, error) {
	body, err := sdk.processRequest(http.MethodPost, sdk.agentURL+"/"+rebootEndpoint, http.StatusOK, http.StatusInternalServerError)
	if err != nil {
		return system.Result{}, err
	}

	var result system.Result
	if err := json.Unmarshal(body, &result); err != nil {
		return system.Result{}, err
	}

	return result, nil
}
