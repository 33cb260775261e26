package firestore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ServiceAccount is a parsed Google service-account credential.
type ServiceAccount struct {
	Raw         []byte
	ProjectID   string
	ClientEmail string
}

type serviceAccountJSON struct {
	Type        string `json:"type"`
	ProjectID   string `json:"project_id"`
	ClientEmail string `json:"client_email"`
	PrivateKey  string `json:"private_key"`
}

// LoadServiceAccount reads the credential from inline JSON when set, otherwise
// from path.
func LoadServiceAccount(inlineJSON string, path string) (ServiceAccount, error) {
	var raw []byte
	source := "FIREBASE_SERVICE_ACCOUNT_KEY"

	if strings.TrimSpace(inlineJSON) != "" {
		raw = []byte(inlineJSON)
	} else {
		if strings.TrimSpace(path) == "" {
			return ServiceAccount{}, errors.New("service account credential is not configured")
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return ServiceAccount{}, fmt.Errorf("read service account file: %w", err)
		}
		raw = data
		source = path
	}

	var parsed serviceAccountJSON
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return ServiceAccount{}, fmt.Errorf("parse service account from %s: %w", source, err)
	}
	if parsed.Type != "" && parsed.Type != "service_account" {
		return ServiceAccount{}, fmt.Errorf("unexpected credential type %q in %s", parsed.Type, source)
	}
	if strings.TrimSpace(parsed.PrivateKey) == "" || strings.TrimSpace(parsed.ClientEmail) == "" {
		return ServiceAccount{}, fmt.Errorf("service account from %s is missing client_email or private_key", source)
	}

	return ServiceAccount{
		Raw:         raw,
		ProjectID:   parsed.ProjectID,
		ClientEmail: parsed.ClientEmail,
	}, nil
}
