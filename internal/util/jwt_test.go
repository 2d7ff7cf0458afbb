package util_test

import (
	"testing"
	"time"

	"lms_backend/internal/model"
	"lms_backend/internal/util"
)

func TestJWTRoundTrip(t *testing.T) {
	user := &model.User{Email: "student@example.com", Role: model.Student}
	user.ID = 42

	token, err := util.GenerateJWT(user, "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	claims, err := util.ParseJWT(token, "test-secret")
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if claims.UserID != 42 || claims.Email != "student@example.com" || claims.Role != model.Student {
		t.Errorf("claims = %+v, want userID 42, student role", claims)
	}
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	user := &model.User{Email: "a@b.c", Role: model.Student}
	user.ID = 1

	token, err := util.GenerateJWT(user, "secret-one", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	if _, err := util.ParseJWT(token, "secret-two"); err == nil {
		t.Error("ParseJWT accepted a token signed with a different secret")
	}
}

func TestJWTRejectsExpired(t *testing.T) {
	user := &model.User{Email: "a@b.c", Role: model.Student}
	user.ID = 1

	token, err := util.GenerateJWT(user, "secret", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	if _, err := util.ParseJWT(token, "secret"); err == nil {
		t.Error("ParseJWT accepted an expired token")
	}
}

func TestMustParseUint(t *testing.T) {
	if got := util.MustParseUint("123"); got != 123 {
		t.Errorf("MustParseUint(123) = %d", got)
	}
	if got := util.MustParseUint("nope"); got != 0 {
		t.Errorf("MustParseUint(nope) = %d, want 0", got)
	}
	if got := util.MustParseUint(""); got != 0 {
		t.Errorf("MustParseUint(empty) = %d, want 0", got)
	}
}
