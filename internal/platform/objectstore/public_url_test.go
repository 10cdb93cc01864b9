package objectstore

import "testing"

func TestGCSPublicURL(t *testing.T) {
	cases := []struct {
		name string
		bs   *gcsBucketService
		want string
	}{
		{
			name: "default",
			bs:   &gcsBucketService{mode: ModeGCS, reportsBucket: "mv-reports"},
			want: "https://storage.googleapis.com/mv-reports/idea-1.pdf",
		},
		{
			name: "cdn",
			bs:   &gcsBucketService{mode: ModeGCS, reportsBucket: "mv-reports", cdnDomain: "cdn.example.com"},
			want: "https://cdn.example.com/idea-1.pdf",
		},
		{
			name: "emulator",
			bs:   &gcsBucketService{mode: ModeGCSEmulator, reportsBucket: "mv-reports", publicBaseURL: "http://localhost:4443"},
			want: "http://localhost:4443/storage/v1/b/mv-reports/o/idea-1.pdf?alt=media",
		},
		{
			name: "public base",
			bs:   &gcsBucketService{mode: ModeGCS, reportsBucket: "mv-reports", publicBaseURL: "https://files.example.com"},
			want: "https://files.example.com/mv-reports/idea-1.pdf",
		},
	}
	for _, tc := range cases {
		if got := tc.bs.GetPublicURL(BucketCategoryReport, "/idea-1.pdf"); got != tc.want {
			t.Fatalf("%s: want=%q got=%q", tc.name, tc.want, got)
		}
	}
}

func TestS3PublicURL(t *testing.T) {
	bs := &s3BucketService{region: "eu-west-1", reportsBucket: "mv-reports"}
	want := "https://mv-reports.s3.eu-west-1.amazonaws.com/a.pdf"
	if got := bs.GetPublicURL(BucketCategoryReport, "a.pdf"); got != want {
		t.Fatalf("want=%q got=%q", want, got)
	}

	bs.publicBaseURL = "http://minio:9000"
	want = "http://minio:9000/mv-reports/a.pdf"
	if got := bs.GetPublicURL(BucketCategoryReport, "a.pdf"); got != want {
		t.Fatalf("want=%q got=%q", want, got)
	}
}

func TestContentTypeForKey(t *testing.T) {
	if got := contentTypeForKey("report-123.PDF"); got != "application/pdf" {
		t.Fatalf("pdf: got=%q", got)
	}
	if got := contentTypeForKey("blob.bin"); got != "" {
		t.Fatalf("unknown: got=%q", got)
	}
}
