package models

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestUserJSONOmitsCredentials(t *testing.T) {
	user := User{
		Name:              "Dana",
		Email:             "dana@example.com",
		Role:              "member",
		Status:            "active",
		PasswordHash:      "$2a$10$stored-hash",
		EncryptedPassword: "aabb:ccdd",
	}

	payload, err := json.Marshal(user)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	for _, secret := range []string{"PasswordHash", "EncryptedPassword", "stored-hash", "aabb:ccdd"} {
		if bytes.Contains(payload, []byte(secret)) {
			t.Errorf("serialized user leaks %q: %s", secret, payload)
		}
	}

	if !bytes.Contains(payload, []byte("dana@example.com")) {
		t.Errorf("display fields should survive serialization: %s", payload)
	}
}
