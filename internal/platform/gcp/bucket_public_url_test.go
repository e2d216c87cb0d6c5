package gcp

import "testing"

func TestPublicURL(t *testing.T) {
	cases := []struct {
		name string
		cfg  StorageConfig
		want string
	}{
		{
			name: "gcs default",
			cfg:  StorageConfig{Mode: StorageModeGCS, Bucket: "estate-media"},
			want: "https://storage.googleapis.com/estate-media/projects/p1/cover.jpg",
		},
		{
			name: "cdn wins",
			cfg:  StorageConfig{Mode: StorageModeEmulator, Bucket: "estate-media", CDNDomain: "cdn.example.com", EmulatorHost: "http://fake-gcs:4443"},
			want: "https://cdn.example.com/projects/p1/cover.jpg",
		},
		{
			name: "emulator media endpoint",
			cfg:  StorageConfig{Mode: StorageModeEmulator, Bucket: "estate-media", EmulatorHost: "http://fake-gcs:4443"},
			want: "http://fake-gcs:4443/storage/v1/b/estate-media/o/projects%2Fp1%2Fcover.jpg?alt=media",
		},
		{
			name: "explicit public base",
			cfg:  StorageConfig{Mode: StorageModeGCS, Bucket: "estate-media", PublicBaseURL: "http://localhost:4443"},
			want: "http://localhost:4443/estate-media/projects/p1/cover.jpg",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := (&bucketStore{cfg: tc.cfg}).PublicURL("/projects/p1/cover.jpg")
			if got != tc.want {
				t.Fatalf("PublicURL: want=%q got=%q", tc.want, got)
			}
		})
	}
}

func TestContentTypeForKey(t *testing.T) {
	if got := contentTypeForKey("a/b/plan.PDF"); got != "application/pdf" {
		t.Fatalf("pdf: got=%q", got)
	}
	if got := contentTypeForKey("a/b/file.bin"); got != "application/octet-stream" {
		t.Fatalf("fallback: got=%q", got)
	}
}
