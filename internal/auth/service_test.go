package auth

import "testing"

func TestIssueAndValidateClientToken(t *testing.T) {
	svc := NewService("test-secret")

	resp, err := svc.IssueClientToken()
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if resp.Token == "" || resp.ClientID == "" || resp.TokenType != "Bearer" {
		t.Fatalf("unexpected token response: %+v", resp)
	}

	clientID, err := svc.ValidateToken(resp.Token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if clientID != resp.ClientID {
		t.Fatalf("client id mismatch: %q vs %q", clientID, resp.ClientID)
	}
}

func TestIssueDistinctClientIDs(t *testing.T) {
	svc := NewService("test-secret")
	a, _ := svc.IssueClientToken()
	b, _ := svc.IssueClientToken()
	if a.ClientID == b.ClientID {
		t.Fatalf("expected distinct client ids")
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	resp, err := NewService("secret-a").IssueClientToken()
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := NewService("secret-b").ValidateToken(resp.Token); err == nil {
		t.Fatalf("expected validation failure across secrets")
	}
}

func TestValidateGarbageToken(t *testing.T) {
	if _, err := NewService("test-secret").ValidateToken("not-a-token"); err == nil {
		t.Fatalf("expected error")
	}
}
