package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"time"

	vegeta "github.com/tsenart/vegeta/v12/lib"
)

const (
	targetHost = "http://localhost:8080"
	rps        = 5
	duration   = 3 * time.Minute
)

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Type     string `json:"type"`
}

type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

var (
	tokens []string
	teams  []string
	httpc  = &http.Client{Timeout: 10 * time.Second}
)

func postJSON(url, token string, body any, out any) (int, error) {
	b, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(b))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := httpc.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if out != nil {
		_ = json.NewDecoder(resp.Body).Decode(out)
	}
	return resp.StatusCode, nil
}

// Seed. The load environment pre-creates confirmed load_user_NN accounts via a
// SQL fixture, so registration here is a best-effort no-op (409 is expected)
// and login yields the bearer tokens used by the targeter.
func seedData() error {
	log.Println("Seeding: registering users...")

	for u := 1; u <= 50; u++ {
		username := fmt.Sprintf("load_user_%02d", u)
		status, err := postJSON(targetHost+"/users", "", RegisterRequest{
			Username: username,
			Email:    fmt.Sprintf("%s@example.com", username),
			Password: "load-test-pass",
			Type:     "player",
		}, nil)
		if err != nil {
			return err
		}
		if status >= 400 && status != http.StatusConflict {
			log.Printf("WARN users returned %d\n", status)
		}

		var loginResp struct {
			Token string `json:"token"`
		}
		status, err = postJSON(targetHost+"/login", "", LoginRequest{
			Login:    username,
			Password: "load-test-pass",
		}, &loginResp)
		if err != nil {
			return err
		}
		if status == http.StatusOK {
			tokens = append(tokens, loginResp.Token)
		} else {
			log.Printf("WARN login for %s returned %d\n", username, status)
		}
		time.Sleep(15 * time.Millisecond)
	}

	log.Println("Seeding: creating teams...")

	for t := 1; t <= 10 && t <= len(tokens); t++ {
		var teamResp struct {
			ID string `json:"id"`
		}
		status, err := postJSON(targetHost+"/teams", tokens[t-1], map[string]string{
			"name":         fmt.Sprintf("load-team-%02d", t),
			"tournamentId": "lol",
		}, &teamResp)
		if err != nil {
			return err
		}
		if status == http.StatusCreated {
			teams = append(teams, teamResp.ID)
		} else {
			log.Printf("WARN teams returned %d\n", status)
		}
		time.Sleep(20 * time.Millisecond)
	}

	log.Printf("Seed completed: tokens=%d teams=%d\n", len(tokens), len(teams))
	return nil
}

// Targeter
func makeTargeter() vegeta.Targeter {
	return func(t *vegeta.Target) error {
		r := rand.Float64()
		token := tokens[rand.Intn(len(tokens))]
		auth := map[string][]string{"Authorization": {"Bearer " + token}}

		// 70% GET items
		if r < 0.70 {
			t.Method = http.MethodGet
			t.URL = targetHost + "/items"
			t.Body = nil
			t.Header = auth
			return nil
		}

		// 20% POST join-request
		if r < 0.90 {
			team := teams[rand.Intn(len(teams))]
			t.Method = http.MethodPost
			t.URL = fmt.Sprintf("%s/teams/%s/join-requests", targetHost, team)
			t.Body = []byte(`{"userType":"player"}`)
			t.Header = map[string][]string{
				"Authorization": auth["Authorization"],
				"Content-Type":  {"application/json"},
			}
			return nil
		}

		// 10% DELETE own join-request
		t.Method = http.MethodDelete
		t.URL = targetHost + "/teams/current/join-requests"
		t.Body = nil
		t.Header = auth
		return nil
	}
}

// Attack
func runAttack() {
	rate := vegeta.Rate{Freq: rps, Per: time.Second}
	attacker := vegeta.NewAttacker()
	targeter := makeTargeter()

	var metrics vegeta.Metrics

	log.Printf("Starting attack: %s for %s", targetHost, duration)
	for res := range attacker.Attack(targeter, rate, duration, "load-test") {
		metrics.Add(res)
	}
	metrics.Close()

	fmt.Println("=== Results ===")
	fmt.Printf("Requests: %d\n", metrics.Requests)
	fmt.Printf("Success rate: %.4f%%\n", metrics.Success*100)
	fmt.Printf("Latency mean: %s\n", metrics.Latencies.Mean)
	fmt.Printf("Latency P95: %s\n", metrics.Latencies.P95)
	fmt.Printf("Latency P99: %s\n", metrics.Latencies.P99)
	fmt.Printf("Status codes: %v\n", metrics.StatusCodes)
}

func main() {
	rand.Seed(time.Now().UnixNano())

	if err := seedData(); err != nil {
		log.Fatalf("Seed failed: %v", err)
	}
	if len(tokens) == 0 || len(teams) == 0 {
		log.Fatal("Seed produced no usable tokens or teams")
	}

	runAttack()
}
