package formsapi_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/approvalforms/formsctl/pkg/domain/model"
	"github.com/approvalforms/formsctl/pkg/domain/types"
	"github.com/approvalforms/formsctl/pkg/service/formsapi"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*formsapi.Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	cred := &formsapi.BasicCredential{EmployeeID: "1001", Password: "secret"}
	return formsapi.New(srv.URL, cred), srv
}

func TestFetchForm(t *testing.T) {
	var gotPath, gotUser string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUser, _, _ = r.BasicAuth()
		gt.Value(t, r.Method).Equal(http.MethodGet)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(&model.Form{
			ID:              42,
			Title:           "Onboarding",
			OwnerEmployeeID: "1001",
			Active:          true,
		})
	})

	form := gt.R1(client.FetchForm(t.Context(), 42)).NoError(t)
	gt.Value(t, gotPath).Equal("/employee/form/42")
	gt.Value(t, gotUser).Equal("1001")
	gt.Value(t, form.Title).Equal("Onboarding")
	gt.Value(t, form.Active).Equal(true)
}

func TestFetchResponses(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gt.Value(t, r.URL.Path).Equal("/employee/form/7/responses")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]*model.ServerResponse{
			{
				ResponseID: 9,
				EmployeeID: "2002",
				Responses: []model.FieldResponse{
					{FieldID: "f1", Value: "done", RecordID: "record-a"},
				},
			},
		})
	})

	rows := gt.R1(client.FetchResponses(t.Context(), 7)).NoError(t)
	gt.Array(t, rows).Length(1)
	gt.Value(t, rows[0].Responses[0].RecordID).Equal(types.RecordID("record-a"))
}

func TestSubmitResponse(t *testing.T) {
	var gotBody model.SubmitRequest
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gt.Value(t, r.Method).Equal(http.MethodPost)
		gt.Value(t, r.URL.Path).Equal("/employee/form/7/response")
		gt.Value(t, r.Header.Get("Content-Type")).Equal("application/json")
		gt.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	})

	link := "2002-f1"
	req := &model.SubmitRequest{
		RecordID: "record-a",
		Responses: []model.SubmitEntry{
			{FieldID: "f2", Value: "yes", LinkedResponseID: &link, RecordID: "record-a", EmployeeID: "1001"},
		},
	}
	gt.NoError(t, client.SubmitResponse(t.Context(), 7, req))
	gt.Array(t, gotBody.Responses).Length(1)
	gt.Value(t, *gotBody.Responses[0].LinkedResponseID).Equal("2002-f1")
}

func TestDeleteResponseSendsBody(t *testing.T) {
	var gotBody model.DeleteResponseRequest
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gt.Value(t, r.Method).Equal(http.MethodDelete)
		gt.Value(t, r.URL.Path).Equal("/employee/form/7/response")
		gt.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	})

	gt.NoError(t, client.DeleteResponse(t.Context(), 7, &model.DeleteResponseRequest{
		RecordID: "record-a",
		FieldID:  "f2",
	}))
	gt.Value(t, gotBody.RecordID).Equal(types.RecordID("record-a"))
	gt.Value(t, gotBody.FieldID).Equal(types.FieldID("f2"))
}

func TestToggleFormStatus(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gt.Value(t, r.Method).Equal(http.MethodPut)
		gt.Value(t, r.URL.Path).Equal("/employee/form/7/status")
		var req model.StatusRequest
		gt.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		_ = json.NewEncoder(w).Encode(&model.Form{ID: 7, Active: req.IsActive})
	})

	form := gt.R1(client.ToggleFormStatus(t.Context(), 7, false)).NoError(t)
	gt.Value(t, form.Active).Equal(false)
}

func TestDeleteRecordPath(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gt.Value(t, r.Method).Equal(http.MethodDelete)
		gt.Value(t, r.URL.Path).Equal("/employee/form/7/record/record-xyz")
		w.WriteHeader(http.StatusOK)
	})
	gt.NoError(t, client.DeleteRecord(t.Context(), 7, "record-xyz"))
}

func TestErrorClassification(t *testing.T) {
	cases := []struct {
		name   string
		status int
		expect error
	}{
		{"unauthorized", http.StatusUnauthorized, formsapi.ErrUnauthorized},
		{"forbidden", http.StatusForbidden, formsapi.ErrAuthorization},
		{"not found", http.StatusNotFound, formsapi.ErrNotFound},
		{"conflict", http.StatusConflict, formsapi.ErrConflict},
		{"server error", http.StatusInternalServerError, formsapi.ErrServer},
		{"bad gateway", http.StatusBadGateway, formsapi.ErrServer},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(`{"message":"nope"}`))
			})
			_, err := client.FetchForm(t.Context(), 7)
			gt.Error(t, err)
			gt.Value(t, errors.Is(err, tc.expect)).Equal(true)
		})
	}
}

func TestNetworkErrWrapped(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	cred := &formsapi.BasicCredential{EmployeeID: "1001", Password: "x"}
	client := formsapi.New(srv.URL, cred)

	_, err := client.FetchForm(t.Context(), 7)
	gt.Error(t, err)
	gt.Value(t, errors.Is(err, formsapi.ErrNetwork)).Equal(true)
}
