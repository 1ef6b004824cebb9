// SPDX-FileCopyrightText: 2022 Free Mobile
// SPDX-License-Identifier: AGPL-3.0-only

//go:build !release

package helpers

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"testing"
)

// HTTPEndpointCases describes cases for TestHTTPEndpoints. When
// JSONOutput is set, the body is decoded as JSON and compared to it
// (objects and arrays are both accepted). Otherwise, the first lines of
// the body are compared to FirstLines.
type HTTPEndpointCases []struct {
	Pos         Pos
	Description string
	Method      string
	URL         string
	Header      http.Header
	JSONInput   any

	ContentType string
	StatusCode  int
	FirstLines  []string
	JSONOutput  any
}

// TestHTTPEndpoints tests a few HTTP endpoints.
func TestHTTPEndpoints(t *testing.T, serverAddr net.Addr, cases HTTPEndpointCases) {
	t.Helper()
	for _, tc := range cases {
		desc := tc.Description
		if desc == "" {
			desc = tc.URL
		}
		t.Run(desc, func(t *testing.T) {
			t.Helper()
			if tc.FirstLines != nil && tc.JSONOutput != nil {
				t.Fatalf("%sCannot have both FirstLines and JSONOutput", tc.Pos)
			}
			method := tc.Method
			var body io.Reader
			if tc.JSONInput != nil {
				payload := new(bytes.Buffer)
				if err := json.NewEncoder(payload).Encode(tc.JSONInput); err != nil {
					t.Fatalf("%sEncode() error:\n%+v", tc.Pos, err)
				}
				body = payload
				if method == "" {
					method = "POST"
				}
			}
			if method == "" {
				method = "GET"
			}
			req, err := http.NewRequest(method, fmt.Sprintf("http://%s%s", serverAddr, tc.URL), body)
			if err != nil {
				t.Fatalf("%sNewRequest() error:\n%+v", tc.Pos, err)
			}
			if tc.Header != nil {
				req.Header = tc.Header.Clone()
			}
			if tc.JSONInput != nil {
				req.Header.Set("Content-Type", "application/json")
			}
			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				t.Fatalf("%s%s %s:\n%+v", tc.Pos, method, tc.URL, err)
			}
			defer resp.Body.Close()

			statusCode := tc.StatusCode
			if statusCode == 0 {
				statusCode = http.StatusOK
			}
			if resp.StatusCode != statusCode {
				t.Errorf("%s%s %s: got status code %d, not %d",
					tc.Pos, method, tc.URL, resp.StatusCode, statusCode)
			}
			contentType := tc.ContentType
			if tc.JSONOutput != nil {
				contentType = "application/json; charset=utf-8"
			}
			if got := resp.Header.Get("Content-Type"); got != contentType {
				t.Errorf("%s%s %s Content-Type (-got, +want):\n-%s\n+%s",
					tc.Pos, method, tc.URL, got, contentType)
			}

			if tc.JSONOutput == nil {
				reader := bufio.NewScanner(resp.Body)
				got := []string{}
				for len(got) < len(tc.FirstLines) && reader.Scan() {
					got = append(got, reader.Text())
				}
				if diff := Diff(got, tc.FirstLines); diff != "" {
					t.Errorf("%s%s %s (-got, +want):\n%s", tc.Pos, method, tc.URL, diff)
				}
				return
			}

			var got any
			if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
				t.Fatalf("%s%s %s:\n%+v", tc.Pos, method, tc.URL, err)
			}
			// Round-trip the expected value to compare JSON with JSON.
			var expected any
			expectedBytes, err := json.Marshal(tc.JSONOutput)
			if err != nil {
				t.Fatalf("%sjson.Marshal() error:\n%+v", tc.Pos, err)
			}
			if err := json.Unmarshal(expectedBytes, &expected); err != nil {
				t.Fatalf("%sjson.Unmarshal() error:\n%+v", tc.Pos, err)
			}
			if diff := Diff(got, expected); diff != "" {
				t.Fatalf("%s%s %s (-got, +want):\n%s", tc.Pos, method, tc.URL, diff)
			}
		})
	}
}
