package mlclient

import (
	"net/http"
	"strings"
)

// splitServerURLs splits the semicolon separated server list into candidate
// URLs. Order is kept, it defines the probe priority.
func splitServerURLs(serverURLs string) []string {
	candidates := make([]string, 0)
	for _, serverURL := range strings.Split(serverURLs, ";") {
		serverURL = strings.TrimSpace(serverURL)
		if serverURL == "" {
			continue
		}
		candidates = append(candidates, serverURL)
	}
	return candidates
}

// probeServer issues the liveness probe against the server root. A transport
// failure is reported as err with a zero status, so callers can tell it apart
// from any real HTTP status.
func (m *MLClient) probeServer(serverURL string) (status int, err error) {
	response, err := m.probeClient.Get(serverURL)
	if err != nil {
		return 0, err
	}
	defer response.Body.Close()
	return response.StatusCode, nil
}

// resolveServerURL probes the candidates in list order and returns the first
// one that answers 200. A failing candidate never aborts the scan. Exactly
// one pass is made, callers decide about retrying.
func (m *MLClient) resolveServerURL(serverURLs string) (string, error) {
	for _, serverURL := range splitServerURLs(serverURLs) {
		status, err := m.probeServer(serverURL)
		if err != nil {
			m.logger.Warnf("machine learning server %s is not reachable: %s", serverURL, err)
			continue
		}
		if status == http.StatusOK {
			m.logger.Debugf("machine learning server %s is alive", serverURL)
			return serverURL, nil
		}
		m.logger.Warnf("machine learning server %s answered the liveness probe with status %d", serverURL, status)
	}
	return "", &NoAvailableServerError{ServerList: serverURLs}
}
