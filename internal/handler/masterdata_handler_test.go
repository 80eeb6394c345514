package handler

import (
	"net/http"
	"testing"

	"github.com/sheetapp/qlda-nhathau-ksnb-sub000/internal/testutil"
)

func TestProjectCRUD(t *testing.T) {
	router, _ := setupBackofficeTest(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(router, "POST", "/api/v1/projects", map[string]interface{}{
		"code":    "CT01",
		"name":    "Khu dan cu Binh Tan",
		"manager": "Nguyen Van A",
	}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	project := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if project["status"] != "active" {
		t.Errorf("Expected default active status, got %v", project["status"])
	}
	id := project["id"].(string)

	w = testutil.DoRequest(router, "PUT", "/api/v1/projects/"+id, map[string]interface{}{
		"code":   "CT01",
		"name":   "Khu dan cu Binh Tan GD2",
		"status": "suspended",
	}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	updated := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if updated["name"] != "Khu dan cu Binh Tan GD2" || updated["status"] != "suspended" {
		t.Errorf("Unexpected updated project: %v", updated)
	}

	w = testutil.DoRequest(router, "DELETE", "/api/v1/projects/"+id, nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	w = testutil.DoRequest(router, "GET", "/api/v1/projects/"+id, nil, token)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 after delete, got %d", w.Code)
	}
}

func TestProjectScopedDocumentCode(t *testing.T) {
	router, _ := setupBackofficeTest(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(router, "POST", "/api/v1/projects", map[string]interface{}{
		"code": "CT01",
		"name": "Test project",
	}, token)
	projectID := testutil.ParseResponse(w)["data"].(map[string]interface{})["id"].(string)

	data := createPYC(t, router, token, map[string]interface{}{
		"title":      "Scoped request",
		"project_id": projectID,
		"items":      []map[string]interface{}{{"item_name": "A", "quantity": 1, "unit_price": 1}},
	})
	id := data["id"].(string)
	if id[:9] != "PYC/CT01/" {
		t.Errorf("Expected project code in document code, got %q", id)
	}
}

func TestSupplierProjectScoping(t *testing.T) {
	router, _ := setupBackofficeTest(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(router, "POST", "/api/v1/suppliers", map[string]interface{}{
		"name": "Shared supplier",
	}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(router, "POST", "/api/v1/suppliers", map[string]interface{}{
		"name":       "Project supplier",
		"project_id": "proj-a",
	}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	// project scope returns its own suppliers plus the shared ones
	w = testutil.DoRequest(router, "GET", "/api/v1/suppliers?project_id=proj-a", nil, token)
	items := testutil.ParseResponse(w)["data"].(map[string]interface{})["items"].([]interface{})
	if len(items) != 2 {
		t.Fatalf("Expected 2 suppliers for project scope, got %d", len(items))
	}

	// a different project sees only the shared supplier
	w = testutil.DoRequest(router, "GET", "/api/v1/suppliers?project_id=proj-b", nil, token)
	items = testutil.ParseResponse(w)["data"].(map[string]interface{})["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("Expected 1 supplier for other project, got %d", len(items))
	}
	if items[0].(map[string]interface{})["name"] != "Shared supplier" {
		t.Errorf("Expected only the shared supplier, got %v", items[0])
	}
}

func TestExpenseGroupResolution(t *testing.T) {
	router, _ := setupBackofficeTest(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(router, "POST", "/api/v1/expense-categories", map[string]interface{}{
		"type_name":  "Vat tu xay dung",
		"group_name": "Chi phi truc tiep",
	}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	createPYC(t, router, token, map[string]interface{}{
		"id":    "PR-1",
		"title": "Source",
		"items": []map[string]interface{}{
			{"item_name": "A", "quantity": 1, "unit_price": 100, "vat_value": 10},
		},
	})
	approvePYC(t, router, token, "PR-1")
	candidates := fetchCandidates(t, router, token, "PR-1")
	sourceLineID := candidates[0].(map[string]interface{})["source_line_id"].(string)

	body := dnttHeader("PR-1", []map[string]interface{}{
		{"source_line_id": sourceLineID, "pyc_request_id": "PR-1", "quantity": 1, "unit_price": 100, "vat_value": 10},
	})
	w = testutil.DoRequest(router, "POST", "/api/v1/payment-requests", body, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if data["expense_group_name"] != "Chi phi truc tiep" {
		t.Errorf("Expected resolved expense group, got %v", data["expense_group_name"])
	}

	// unknown type resolves to empty group, not an error
	body = dnttHeader("PR-1", []map[string]interface{}{
		{"source_line_id": sourceLineID, "pyc_request_id": "PR-1", "quantity": 1, "unit_price": 100, "vat_value": 10},
	})
	body["expense_type_name"] = "Khong ton tai"
	body["document_number"] = "HD-2026-015"
	w = testutil.DoRequest(router, "POST", "/api/v1/payment-requests", body, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201 for unknown expense type, got %d: %s", w.Code, w.Body.String())
	}
	data = testutil.ParseResponse(w)["data"].(map[string]interface{})
	if data["expense_group_name"] != "" {
		t.Errorf("Expected empty group for unknown type, got %v", data["expense_group_name"])
	}
}

func TestPersonnelCreateAndList(t *testing.T) {
	router, _ := setupBackofficeTest(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(router, "POST", "/api/v1/personnel", map[string]interface{}{
		"name":  "Tran Thi B",
		"email": "b@congty.vn",
		"role":  "accountant",
	}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	person := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if person["email"] != "b@congty.vn" {
		t.Errorf("Unexpected person: %v", person)
	}

	w = testutil.DoRequest(router, "GET", "/api/v1/personnel?search=Tran", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	items := testutil.ParseResponse(w)["data"].(map[string]interface{})["items"].([]interface{})
	if len(items) != 1 {
		t.Errorf("Expected 1 search hit, got %d", len(items))
	}
}
