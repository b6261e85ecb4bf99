package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"bankist/internal/config"
	"bankist/internal/server"
)

type IntegrationTestSuite struct {
	suite.Suite
	serverInstance *server.Server
	serverPort     string
	baseURL        string
	client         *http.Client
}

func (suite *IntegrationTestSuite) SetupSuite() {
	cfg := &config.Config{
		ServerPort:      "0", // Let OS choose a free port
		SessionTimeout:  300 * time.Second,
		LoanDelay:       100 * time.Millisecond,
		LogLevel:        "info",
		LogFormat:       "json",
		RateLimitRPS:    1000,
		RateLimitBurst:  1000,
		ShutdownTimeout: 5 * time.Second,
	}

	serverInstance, port, err := server.StartServer(cfg)
	if err != nil {
		suite.T().Fatalf("Failed to start application server: %s", err)
	}

	suite.serverInstance = serverInstance
	suite.serverPort = port
	suite.baseURL = "http://localhost:" + port
	suite.client = &http.Client{
		Timeout: 30 * time.Second,
	}

	if err := suite.waitForServerReady(); err != nil {
		suite.T().Fatalf("Server not ready: %s", err)
	}
}

func (suite *IntegrationTestSuite) waitForServerReady() error {
	timeout := 10 * time.Second
	start := time.Now()

	for time.Since(start) < timeout {
		resp, err := http.Get(suite.baseURL + "/health")
		if err == nil && resp.StatusCode == http.StatusOK {
			resp.Body.Close()
			return nil
		}
		if resp != nil {
			resp.Body.Close()
		}
		time.Sleep(50 * time.Millisecond)
	}
	return fmt.Errorf("server not ready after %v", timeout)
}

func (suite *IntegrationTestSuite) TearDownSuite() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if suite.serverInstance != nil {
		suite.serverInstance.Stop(ctx)
	}
}

// call sends a JSON request and returns the status code and raw body
func (suite *IntegrationTestSuite) call(method, path string, reqBody map[string]interface{}) (int, string, error) {
	var body io.Reader
	if reqBody != nil {
		b, _ := json.Marshal(reqBody)
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, suite.baseURL+path, body)
	if err != nil {
		return 0, "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := suite.client.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(respBody), nil
}

func (suite *IntegrationTestSuite) login(username, pin string) (int, string, error) {
	return suite.call("POST", "/session", map[string]interface{}{
		"username": username,
		"pin":      pin,
	})
}

func (suite *IntegrationTestSuite) transfer(to, amount string) (int, string, error) {
	return suite.call("POST", "/transfers", map[string]interface{}{
		"to":     to,
		"amount": amount,
	})
}

// Helper to parse response and log errors
func (suite *IntegrationTestSuite) parseResponse(body string) (map[string]interface{}, error) {
	var response map[string]interface{}
	if err := json.Unmarshal([]byte(body), &response); err != nil {
		suite.T().Logf("Failed to parse response: %s", body)
		return nil, err
	}
	return response, nil
}

func (suite *IntegrationTestSuite) dashboardData(body string) map[string]interface{} {
	response, err := suite.parseResponse(body)
	assert.NoError(suite.T(), err)

	data, hasData := response["data"]
	assert.True(suite.T(), hasData, "Response should have 'data' field")
	if !hasData {
		return map[string]interface{}{}
	}
	return data.(map[string]interface{})
}

func (suite *IntegrationTestSuite) assertErrorCode(body, code string) {
	response, err := suite.parseResponse(body)
	assert.NoError(suite.T(), err)

	errorData, hasError := response["error"]
	assert.True(suite.T(), hasError, "Response should have 'error' field for error cases")

	if hasError {
		errorInfo := errorData.(map[string]interface{})
		assert.Equal(suite.T(), code, errorInfo["code"])
	}
}

// Helper to compare decimal values properly
func (suite *IntegrationTestSuite) assertDecimalEqual(expected, actual string) {
	expectedDec, err := decimal.NewFromString(expected)
	if err != nil {
		suite.T().Fatalf("Invalid expected decimal: %s", expected)
	}

	actualDec, err := decimal.NewFromString(actual)
	if err != nil {
		suite.T().Fatalf("Invalid actual decimal: %s", actual)
	}

	assert.True(suite.T(), expectedDec.Equal(actualDec),
		"Decimal values not equal: expected %s, got %s", expected, actual)
}

func (suite *IntegrationTestSuite) summaryBalance(dashboard map[string]interface{}) string {
	summary := dashboard["summary"].(map[string]interface{})
	return summary["balance"].(string)
}

// ------------------------------------------------------------------
// Steps below are executed in the order invoked by TestFlow.
// ------------------------------------------------------------------

func (suite *IntegrationTestSuite) stepHealthCheck() {
	status, body, err := suite.call("GET", "/health", nil)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusOK, status)

	response, err := suite.parseResponse(body)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "healthy", response["status"])
}

func (suite *IntegrationTestSuite) stepListAccounts() {
	status, body, err := suite.call("GET", "/accounts", nil)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusOK, status)

	response, err := suite.parseResponse(body)
	assert.NoError(suite.T(), err)
	accounts := response["data"].([]interface{})
	assert.Len(suite.T(), accounts, 2)
}

func (suite *IntegrationTestSuite) stepRejectedLogin() {
	status, body, err := suite.login("js", "9999")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusUnauthorized, status)
	suite.assertErrorCode(body, "invalid_pin")

	status, body, err = suite.login("nobody", "1111")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusNotFound, status)
	suite.assertErrorCode(body, "user_not_found")
}

func (suite *IntegrationTestSuite) stepLogin() {
	status, body, err := suite.login("js", "1111")
	assert.NoError(suite.T(), err)
	suite.T().Logf("Login Response: %s", body)
	assert.Equal(suite.T(), http.StatusOK, status)

	dashboard := suite.dashboardData(body)
	assert.Equal(suite.T(), "Welcome back, Jonas", dashboard["welcome"])
	assert.Equal(suite.T(), "05:00", dashboard["timer"])
	suite.assertDecimalEqual("25952.59", suite.summaryBalance(dashboard))
}

func (suite *IntegrationTestSuite) stepSuccessfulTransfer() {
	status, body, err := suite.transfer("jd", "100.50")
	assert.NoError(suite.T(), err)
	suite.T().Logf("Transfer Response: %s", body)
	assert.Equal(suite.T(), http.StatusOK, status)

	dashboard := suite.dashboardData(body)
	// 25952.59 - 100.50 = 25852.09
	suite.assertDecimalEqual("25852.09", suite.summaryBalance(dashboard))
	assert.Len(suite.T(), dashboard["rows"], 9)
}

func (suite *IntegrationTestSuite) stepFailedTransfers() {
	status, body, err := suite.transfer("jd", "1000000")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusUnprocessableEntity, status)
	suite.assertErrorCode(body, "insufficient_balance")

	status, body, err = suite.transfer("js", "10")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusBadRequest, status)
	suite.assertErrorCode(body, "same_account_transfer")

	status, body, err = suite.transfer("jd", "abc")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusBadRequest, status)
	suite.assertErrorCode(body, "invalid_amount")

	status, body, err = suite.transfer("zz", "10")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusNotFound, status)
	suite.assertErrorCode(body, "account_not_found")
}

func (suite *IntegrationTestSuite) stepLoan() {
	status, body, err := suite.call("POST", "/loans", map[string]interface{}{"amount": "1000.9"})
	assert.NoError(suite.T(), err)
	suite.T().Logf("Loan Response: %s", body)
	assert.Equal(suite.T(), http.StatusAccepted, status)

	ticket := suite.dashboardData(body)
	assert.Equal(suite.T(), "1000", ticket["amount"])

	assert.Eventually(suite.T(), func() bool {
		_, body, err := suite.call("GET", "/session", nil)
		if err != nil {
			return false
		}
		return suite.summaryBalance(suite.dashboardData(body)) == "26852.09"
	}, 5*time.Second, 50*time.Millisecond)
}

func (suite *IntegrationTestSuite) stepDisplay() {
	resp, err := suite.client.Get(suite.baseURL + "/")
	assert.NoError(suite.T(), err)
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 10, doc.Find(".movements__row").Length())
	assert.Equal(suite.T(), "10 deposit", doc.Find(".movements__row .movements__type").First().Text())
}

func (suite *IntegrationTestSuite) stepCloseAccount() {
	status, body, err := suite.login("jd", "2222")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusOK, status)

	dashboard := suite.dashboardData(body)
	// 11720 + 100.50 received from js
	suite.assertDecimalEqual("11820.5", suite.summaryBalance(dashboard))

	status, _, err = suite.call("POST", "/session/close", map[string]interface{}{"username": "jd", "pin": "2222"})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusNoContent, status)

	status, body, err = suite.call("GET", "/session", nil)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusOK, status)
	assert.Equal(suite.T(), false, suite.dashboardData(body)["logged_in"])

	status, body, err = suite.login("jd", "2222")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), http.StatusNotFound, status)
	suite.assertErrorCode(body, "user_not_found")
}

func (suite *IntegrationTestSuite) TestFlow() {
	if testing.Short() {
		suite.T().Skip("Skipping integration test in short mode")
	}

	suite.stepHealthCheck()
	suite.stepListAccounts()
	suite.stepRejectedLogin()
	suite.stepLogin()
	suite.stepSuccessfulTransfer()
	suite.stepFailedTransfers()
	suite.stepLoan()
	suite.stepDisplay()
	suite.stepCloseAccount()
}

func TestIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	suite.Run(t, new(IntegrationTestSuite))
}
