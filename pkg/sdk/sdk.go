package sdk

import (
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"slices"

	"github.com/absmach/warden/monitor"
	"github.com/absmach/warden/system"
)

const CTJSON string = "application/json"

// HealthInfo mirrors the health endpoint payload.
type HealthInfo struct {
	Status      string `json:"status"`
	Version     string `json:"version,omitempty"`
	Commit      string `json:"commit,omitempty"`
	Description string `json:"description,omitempty"`
	BuildTime   string `json:"build_time,omitempty"`
	InstanceID  string `json:"instance_id,omitempty"`
}

// ServiceInfo mirrors the info endpoint payload.
type ServiceInfo struct {
	Service        string   `json:"service"`
	Version        string   `json:"version"`
	Endpoints      []string `json:"endpoints"`
	Authentication string   `json:"authentication"`
}

type SDK interface {
	// Health checks the agent health. No authentication required.
	//
	// example:
	//  health, _ := sdk.Health()
	//  fmt.Println(health)
	Health() (HealthInfo, error)

	// Info returns the service description and endpoint list.
	//
	// example:
	//  info, _ := sdk.Info()
	//  fmt.Println(info)
	Info() (ServiceInfo, error)

	// Metrics returns a live resource snapshot. Requires the bearer token.
	//
	// example:
	//  m, _ := sdk.Metrics()
	//  fmt.Println(m.CPU)
	Metrics() (monitor.Snapshot, error)

	// Update runs a system update on the host. Long-running; the call
	// blocks until both update steps finish or time out.
	Update() (system.Result, error)

	// Reboot reboots the host. Success means the reboot was initiated,
	// the agent cannot wait for it to complete.
	Reboot() (system.Result, error)
}

type wardenSDK struct {
	agentURL string
	token    string
	client   *http.Client
}

type Config struct {
	AgentURL        string
	Token           string
	TLSVerification bool
}

func NewSDK(cfg Config) SDK {
	return &wardenSDK{
		agentURL: cfg.AgentURL,
		token:    cfg.Token,
		client: &http.Client{
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{
					InsecureSkipVerify: !cfg.TLSVerification,
				},
			},
		},
	}
}

func (sdk *wardenSDK) processRequest(method, reqURL string, expectedRespCodes ...int) ([]byte, error) {
	req, err := http.NewRequest(method, reqURL, http.NoBody)
	if err != nil {
		return []byte{}, err
	}

	req.Header.Add("Content-Type", CTJSON)
	if sdk.token != "" {
		req.Header.Add("Authorization", "Bearer "+sdk.token)
	}

	resp, err := sdk.client.Do(req)
	if err != nil {
		return []byte{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return []byte{}, err
	}

	if !slices.Contains(expectedRespCodes, resp.StatusCode) {
		return []byte{}, fmt.Errorf("unexpected response code: %d", resp.StatusCode)
	}

	return body, nil
}
