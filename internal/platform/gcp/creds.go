package gcp

import (
	"strings"

	"google.golang.org/api/option"

	"github.com/yungbote/estatehub-backend/internal/platform/envutil"
)

// ClientOptionsFromEnv accepts either inline credentials JSON or a path to a
// credentials file.
func ClientOptionsFromEnv() []option.ClientOption {
	creds := envutil.String("GOOGLE_APPLICATION_CREDENTIALS_JSON", "")
	if creds == "" {
		creds = envutil.String("GOOGLE_APPLICATION_CREDENTIALS", "")
	}
	if creds == "" {
		return nil
	}
	if strings.HasPrefix(creds, "{") {
		return []option.ClientOption{option.WithCredentialsJSON([]byte(creds))}
	}
	return []option.ClientOption{option.WithCredentialsFile(creds)}
}
