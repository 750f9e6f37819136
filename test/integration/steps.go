package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/cucumber/godog"
)

// StepsContext holds state shared between step definitions
type StepsContext struct {
	tc           *TestContext
	response     *http.Response
	responseBody []byte
	authToken    string
}

// NewStepsContext creates a new steps context
func NewStepsContext(tc *TestContext) *StepsContext {
	return &StepsContext{tc: tc}
}

// reset drops everything a previous scenario left in postgres except the
// default admin. The content tree is shared.
func (s *StepsContext) reset(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
	s.response = nil
	s.responseBody = nil
	s.authToken = ""
	if err := s.tc.DB.Exec(`DELETE FROM pending_changes`).Error; err != nil {
		return ctx, err
	}
	return ctx, s.tc.DB.Exec(`DELETE FROM users WHERE username <> 'admin'`).Error
}

// RegisterSteps registers all step definitions
func (s *StepsContext) RegisterSteps(sc *godog.ScenarioContext) {
	// Background steps
	sc.Step(`^the CMS server is running$`, s.theCMSServerIsRunning)
	sc.Step(`^I am logged in as the admin$`, s.iAmLoggedInAsTheAdmin)
	sc.Step(`^an editor "([^"]*)" with password "([^"]*)" exists for country "([^"]*)"$`, s.anEditorExists)
	sc.Step(`^the editor "([^"]*)" requires approval$`, s.theEditorRequiresApproval)

	// Authentication steps
	sc.Step(`^I log in as "([^"]*)" with password "([^"]*)"$`, s.iLogInAs)
	sc.Step(`^I log out$`, s.iLogOut)
	sc.Step(`^I should receive a session cookie$`, s.iShouldReceiveASessionCookie)

	// Request steps
	sc.Step(`^I send a (GET|POST|PUT|DELETE) request to "([^"]*)"$`, s.iSendARequestTo)
	sc.Step(`^I send a (POST|PUT) request to "([^"]*)" with body:$`, s.iSendARequestWithBody)
	sc.Step(`^I approve the latest pending change$`, s.iApproveTheLatestPendingChange)
	sc.Step(`^I reject the latest pending change$`, s.iRejectTheLatestPendingChange)
	sc.Step(`^I delete the user "([^"]*)"$`, s.iDeleteTheUser)

	// Response steps
	sc.Step(`^the response status should be (\d+)$`, s.theResponseStatusShouldBe)
	sc.Step(`^the response error should be "([^"]*)"$`, s.theResponseErrorShouldBe)
	sc.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, s.theResponseFieldShouldBe)
	sc.Step(`^the response should not contain "([^"]*)"$`, s.theResponseShouldNotContain)

	// Database steps
	sc.Step(`^there should be (\d+) pending changes? in the database$`, s.thereShouldBePendingChanges)
	sc.Step(`^user "([^"]*)" should exist in the database$`, s.userShouldExistInTheDatabase)
	sc.Step(`^user "([^"]*)" should not exist in the database$`, s.userShouldNotExistInTheDatabase)
	sc.Step(`^an audit message with msgid "([^"]*)" should be recorded$`, s.anAuditMessageShouldBeRecorded)
}

// Background steps

func (s *StepsContext) theCMSServerIsRunning() error {
	// Server is already running via TestContext
	return nil
}

func (s *StepsContext) iAmLoggedInAsTheAdmin() error {
	if err := s.iLogInAs("admin", adminPassword); err != nil {
		return err
	}
	return s.theResponseStatusShouldBe(http.StatusOK)
}

func (s *StepsContext) anEditorExists(username, password, country string) error {
	body := map[string]interface{}{
		"username":  username,
		"password":  password,
		"name":      username,
		"role":      "editor",
		"countries": []string{country},
	}
	if err := s.sendJSON(http.MethodPost, "/api/auth/users", body); err != nil {
		return err
	}
	return s.theResponseStatusShouldBe(http.StatusOK)
}

func (s *StepsContext) theEditorRequiresApproval(username string) error {
	id, err := s.userID(username)
	if err != nil {
		return err
	}
	body := map[string]interface{}{
		"permissions": map[string]bool{
			"canCreate":        true,
			"canEdit":          true,
			"canDelete":        true,
			"requiresApproval": true,
		},
	}
	if err := s.sendJSON(http.MethodPut, "/api/auth/users/"+id, body); err != nil {
		return err
	}
	return s.theResponseStatusShouldBe(http.StatusOK)
}

// Authentication steps

func (s *StepsContext) iLogInAs(username, password string) error {
	s.authToken = ""
	body := map[string]string{"username": username, "password": password}
	if err := s.sendJSON(http.MethodPost, "/api/auth/login", body); err != nil {
		return err
	}

	if s.response.StatusCode == http.StatusOK {
		var result struct {
			Token string `json:"token"`
		}
		if err := json.Unmarshal(s.responseBody, &result); err == nil {
			s.authToken = result.Token
		}
	}
	return nil
}

func (s *StepsContext) iLogOut() error {
	return s.send(http.MethodPost, "/api/auth/logout", nil)
}

func (s *StepsContext) iShouldReceiveASessionCookie() error {
	for _, c := range s.response.Cookies() {
		if c.Name != "token" {
			continue
		}
		if c.Value == "" {
			return fmt.Errorf("token cookie is empty")
		}
		if !c.HttpOnly {
			return fmt.Errorf("token cookie is not HttpOnly")
		}
		return nil
	}
	return fmt.Errorf("no token cookie in response")
}

// Request steps

func (s *StepsContext) iSendARequestTo(method, path string) error {
	return s.send(method, path, nil)
}

func (s *StepsContext) iSendARequestWithBody(method, path string, body *godog.DocString) error {
	return s.send(method, path, []byte(body.Content))
}

func (s *StepsContext) iApproveTheLatestPendingChange() error {
	id, err := s.latestPendingID()
	if err != nil {
		return err
	}
	return s.send(http.MethodPost, "/api/cms/pending/"+id+"/approve", nil)
}

func (s *StepsContext) iRejectTheLatestPendingChange() error {
	id, err := s.latestPendingID()
	if err != nil {
		return err
	}
	return s.send(http.MethodPost, "/api/cms/pending/"+id+"/reject", nil)
}

func (s *StepsContext) iDeleteTheUser(username string) error {
	id, err := s.userID(username)
	if err != nil {
		return err
	}
	return s.send(http.MethodDelete, "/api/auth/users/"+id, nil)
}

// Response steps

func (s *StepsContext) theResponseStatusShouldBe(expectedStatus int) error {
	if s.response == nil {
		return fmt.Errorf("no request was sent")
	}
	if s.response.StatusCode != expectedStatus {
		return fmt.Errorf("expected status %d, got %d: %s", expectedStatus, s.response.StatusCode, string(s.responseBody))
	}
	return nil
}

func (s *StepsContext) theResponseErrorShouldBe(expected string) error {
	return s.theResponseFieldShouldBe("error", expected)
}

func (s *StepsContext) theResponseFieldShouldBe(field, expected string) error {
	var result map[string]interface{}
	if err := json.Unmarshal(s.responseBody, &result); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	var value interface{} = result
	for _, part := range strings.Split(field, ".") {
		obj, ok := value.(map[string]interface{})
		if !ok {
			return fmt.Errorf("field %q not found in response", field)
		}
		value = obj[part]
	}

	if got := fmt.Sprint(value); got != expected {
		return fmt.Errorf("expected %s=%q, got %q", field, expected, got)
	}
	return nil
}

func (s *StepsContext) theResponseShouldNotContain(text string) error {
	if bytes.Contains(s.responseBody, []byte(text)) {
		return fmt.Errorf("response unexpectedly contains %q: %s", text, string(s.responseBody))
	}
	return nil
}

// Database steps

func (s *StepsContext) thereShouldBePendingChanges(expected int) error {
	var count int64
	if err := s.tc.DB.Raw(`SELECT COUNT(*) FROM pending_changes`).Scan(&count).Error; err != nil {
		return err
	}
	if int(count) != expected {
		return fmt.Errorf("expected %d pending changes, got %d", expected, count)
	}
	return nil
}

func (s *StepsContext) userShouldExistInTheDatabase(username string) error {
	_, err := s.userID(username)
	return err
}

func (s *StepsContext) userShouldNotExistInTheDatabase(username string) error {
	var count int64
	if err := s.tc.DB.Raw(`SELECT COUNT(*) FROM users WHERE username = ?`, username).Scan(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("user %s should not exist but does", username)
	}
	return nil
}

func (s *StepsContext) anAuditMessageShouldBeRecorded(msgid string) error {
	var count int64
	if err := s.tc.DB.Raw(`SELECT COUNT(*) FROM audit_messages WHERE msgid = ?`, msgid).Scan(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("no audit message with msgid %s", msgid)
	}
	return nil
}

// helpers

func (s *StepsContext) sendJSON(method, path string, body interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	return s.send(method, path, data)
}

func (s *StepsContext) send(method, path string, body []byte) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequest(method, s.tc.ServerURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+s.authToken)
	}

	s.response, err = s.tc.HTTPClient.Do(req)
	if err != nil {
		return err
	}

	s.responseBody, err = io.ReadAll(s.response.Body)
	_ = s.response.Body.Close()
	return err
}

func (s *StepsContext) userID(username string) (string, error) {
	var ids []string
	if err := s.tc.DB.Raw(`SELECT id FROM users WHERE username = ?`, username).Scan(&ids).Error; err != nil {
		return "", err
	}
	if len(ids) == 0 {
		return "", fmt.Errorf("user %s does not exist", username)
	}
	return ids[0], nil
}

func (s *StepsContext) latestPendingID() (string, error) {
	var ids []string
	if err := s.tc.DB.Raw(`SELECT id FROM pending_changes ORDER BY seq DESC LIMIT 1`).Scan(&ids).Error; err != nil {
		return "", err
	}
	if len(ids) == 0 {
		return "", fmt.Errorf("no pending changes")
	}
	return ids[0], nil
}
