package handler

import (
	"math"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sheetapp/qlda-nhathau-ksnb-sub000/internal/testutil"
)

func approvePYC(t *testing.T, router *gin.Engine, token, id string) {
	t.Helper()
	w := testutil.DoRequest(router, "PATCH", "/api/v1/purchase-requests/"+id+"/status",
		map[string]interface{}{"status": "approved"}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Failed to approve %s: %d %s", id, w.Code, w.Body.String())
	}
}

func fetchCandidates(t *testing.T, router *gin.Engine, token, pycIDs string) []interface{} {
	t.Helper()
	w := testutil.DoRequest(router, "GET", "/api/v1/payment-requests/candidates?pyc_ids="+pycIDs, nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Candidates request failed: %d %s", w.Code, w.Body.String())
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	lines, _ := data["lines"].([]interface{})
	return lines
}

func dnttHeader(requestID string, lines []map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{
		"selected_request_ids": []string{requestID},
		"lines":                lines,
		"request_date":         time.Now().Format(time.RFC3339),
		"supplier_name":        "Cong ty VLXD Minh Phat",
		"expense_type_name":    "Vat tu xay dung",
		"contract_type_code":   "with_contract",
		"document_number":      "HD-2026-014",
		"payer_type":           "company",
		"payment_type_code":    "bank_transfer",
	}
}

func TestPaymentRequestCandidates(t *testing.T) {
	router, _ := setupBackofficeTest(t)
	token := testutil.DefaultTestToken()

	pyc := createPYC(t, router, token, map[string]interface{}{
		"id":                "PR-1",
		"title":             "Cement order",
		"default_vat_value": 8,
		"items": []map[string]interface{}{
			{"item_name": "Cement PCB40", "unit": "bag", "quantity": 100, "unit_price": 50000, "vat_value": 10},
			{"item_name": "Additive", "unit": "kg", "quantity": 20, "unit_price": 30000}, // inherits request VAT
		},
	})
	id := pyc["id"].(string)
	if id != "PR-1" {
		t.Fatalf("Expected explicit id kept, got %q", id)
	}

	// not yet approved: no candidates
	if lines := fetchCandidates(t, router, token, "PR-1"); len(lines) != 0 {
		t.Fatalf("Expected no candidates before approval, got %d", len(lines))
	}

	approvePYC(t, router, token, "PR-1")

	lines := fetchCandidates(t, router, token, "PR-1")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 candidate lines, got %d", len(lines))
	}

	first := lines[0].(map[string]interface{})
	if first["pyc_request_id"] != "PR-1" || first["item_name"] != "Cement PCB40" {
		t.Errorf("Unexpected first candidate: %v", first)
	}
	if first["gross"].(float64) != 5000000 {
		t.Errorf("Expected gross 5000000, got %v", first["gross"])
	}
	if math.Abs(first["net"].(float64)-5000000/1.1) > 1e-6 {
		t.Errorf("Expected gross-down net, got %v", first["net"])
	}

	// zero-VAT line with no display falls back to the request default
	second := lines[1].(map[string]interface{})
	if second["vat_value"].(float64) != 8 {
		t.Errorf("Expected inherited VAT 8, got %v", second["vat_value"])
	}
}

func TestPaymentRequestDerivation(t *testing.T) {
	router, _ := setupBackofficeTest(t)
	token := testutil.DefaultTestToken()

	createPYC(t, router, token, map[string]interface{}{
		"id":           "PR-1",
		"title":        "Cement order",
		"request_type": "materials",
		"items": []map[string]interface{}{
			{"item_name": "Cement PCB40", "unit": "bag", "quantity": 100, "unit_price": 50000, "vat_value": 10},
		},
	})
	approvePYC(t, router, token, "PR-1")

	candidates := fetchCandidates(t, router, token, "PR-1")
	sourceLineID := candidates[0].(map[string]interface{})["source_line_id"].(string)

	body := dnttHeader("PR-1", []map[string]interface{}{
		{"source_line_id": sourceLineID, "pyc_request_id": "PR-1", "quantity": 100, "unit_price": 50000, "vat_value": 10},
	})

	w := testutil.DoRequest(router, "POST", "/api/v1/payment-requests", body, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})

	id := data["id"].(string)
	if id[:11] != "DNTT/CHUNG/" {
		t.Errorf("Expected DNTT shared-scope code, got %q", id)
	}
	if data["status"] != "created" {
		t.Errorf("Expected status created, got %v", data["status"])
	}
	if data["pyc_classification"] != "materials" {
		t.Errorf("Expected classification from source, got %v", data["pyc_classification"])
	}
	if data["payment_method"] != "Bank transfer" {
		t.Errorf("Expected derived payment method, got %v", data["payment_method"])
	}

	if got := data["total_gross"].(float64); got != 5000000 {
		t.Errorf("Expected total gross 5000000, got %v", got)
	}
	wantNet := 5000000 / 1.1
	if got := data["total_net"].(float64); math.Abs(got-wantNet) > 1e-6 {
		t.Errorf("Expected total net %v, got %v", wantNet, got)
	}
	if got := data["vat_amount"].(float64); math.Abs(got-(5000000-wantNet)) > 1e-6 {
		t.Errorf("Expected vat %v, got %v", 5000000-wantNet, got)
	}

	// single-line projection populated
	if data["quantity"].(float64) != 100 || data["unit_price"].(float64) != 50000 {
		t.Errorf("Expected single-line projection, got qty=%v price=%v", data["quantity"], data["unit_price"])
	}
	if math.Abs(data["net_unit_price"].(float64)-wantNet/100) > 1e-6 {
		t.Errorf("Expected net unit price %v, got %v", wantNet/100, data["net_unit_price"])
	}

	items := data["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("Expected 1 line, got %d", len(items))
	}
	line := items[0].(map[string]interface{})
	if line["is_qty_from_pyc"] != true || line["is_price_from_pyc"] != true {
		t.Errorf("Expected from-PYC flags true for unchanged values: %v", line)
	}
	if line["pyc_title"] != "Cement order" {
		t.Errorf("Expected pyc_title carried over, got %v", line["pyc_title"])
	}

	history := data["status_history"].([]interface{})
	if len(history) != 1 {
		t.Fatalf("Expected 1 ledger entry, got %d", len(history))
	}
	if history[0].(map[string]interface{})["status"] != "created" {
		t.Errorf("Unexpected initial ledger entry: %v", history[0])
	}
}

func TestPaymentRequestOverrideFlags(t *testing.T) {
	router, _ := setupBackofficeTest(t)
	token := testutil.DefaultTestToken()

	createPYC(t, router, token, map[string]interface{}{
		"id":    "PR-1",
		"title": "Partial payment source",
		"items": []map[string]interface{}{
			{"item_name": "Steel bars", "quantity": 50, "unit_price": 120000, "vat_value": 10},
		},
	})
	approvePYC(t, router, token, "PR-1")

	candidates := fetchCandidates(t, router, token, "PR-1")
	sourceLineID := candidates[0].(map[string]interface{})["source_line_id"].(string)

	// pay only half the quantity at a renegotiated price
	body := dnttHeader("PR-1", []map[string]interface{}{
		{"source_line_id": sourceLineID, "pyc_request_id": "PR-1", "quantity": 25, "unit_price": 118000, "vat_value": 10},
	})

	w := testutil.DoRequest(router, "POST", "/api/v1/payment-requests", body, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})

	line := data["items"].([]interface{})[0].(map[string]interface{})
	if line["is_qty_from_pyc"] != false {
		t.Errorf("Expected qty override flag false, got %v", line["is_qty_from_pyc"])
	}
	if line["is_price_from_pyc"] != false {
		t.Errorf("Expected price override flag false, got %v", line["is_price_from_pyc"])
	}
	if got := data["total_gross"].(float64); got != 25*118000 {
		t.Errorf("Expected gross recomputed from overrides, got %v", got)
	}
}

func TestPaymentRequestMultiLineTotals(t *testing.T) {
	router, _ := setupBackofficeTest(t)
	token := testutil.DefaultTestToken()

	createPYC(t, router, token, map[string]interface{}{
		"id":    "PR-1",
		"title": "Mixed order",
		"items": []map[string]interface{}{
			{"item_name": "A", "quantity": 5, "unit_price": 100, "vat_value": 10},
			{"item_name": "B", "quantity": 2, "unit_price": 50, "vat_display": "0%", "vat_value": 0},
		},
	})
	approvePYC(t, router, token, "PR-1")

	candidates := fetchCandidates(t, router, token, "PR-1")
	lineA := candidates[0].(map[string]interface{})["source_line_id"].(string)
	lineB := candidates[1].(map[string]interface{})["source_line_id"].(string)

	body := dnttHeader("PR-1", []map[string]interface{}{
		{"source_line_id": lineA, "pyc_request_id": "PR-1", "quantity": 5, "unit_price": 100, "vat_value": 10},
		{"source_line_id": lineB, "pyc_request_id": "PR-1", "quantity": 2, "unit_price": 50, "vat_value": 0},
	})

	w := testutil.DoRequest(router, "POST", "/api/v1/payment-requests", body, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})

	if got := data["total_gross"].(float64); got != 600 {
		t.Errorf("Expected gross 600, got %v", got)
	}
	wantNet := 500/1.1 + 100
	if got := data["total_net"].(float64); math.Abs(got-wantNet) > 1e-6 {
		t.Errorf("Expected net %v, got %v", wantNet, got)
	}
	if got := data["vat_amount"].(float64); math.Abs(got-(600-wantNet)) > 1e-6 {
		t.Errorf("Expected vat %v, got %v", 600-wantNet, got)
	}

	// projection is meaningless with more than one line
	if data["quantity"] != nil || data["unit_price"] != nil || data["net_unit_price"] != nil {
		t.Errorf("Expected nil single-line projection on multi-line voucher")
	}
}

func TestPaymentRequestValidation(t *testing.T) {
	router, _ := setupBackofficeTest(t)
	token := testutil.DefaultTestToken()

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

	// missing request_date is reported first among the header fields
	body := dnttHeader("PR-1", []map[string]interface{}{
		{"source_line_id": sourceLineID, "pyc_request_id": "PR-1", "quantity": 1, "unit_price": 100, "vat_value": 10},
	})
	delete(body, "request_date")
	delete(body, "supplier_name")

	w := testutil.DoRequest(router, "POST", "/api/v1/payment-requests", body, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d: %s", w.Code, w.Body.String())
	}
	msg := testutil.ParseResponse(w)["message"].(string)
	if msg != "invalid or missing field: request_date" {
		t.Errorf("Expected request_date reported first, got %q", msg)
	}

	// unknown source line
	body = dnttHeader("PR-1", []map[string]interface{}{
		{"source_line_id": "does-not-exist", "pyc_request_id": "PR-1", "quantity": 1, "unit_price": 100, "vat_value": 10},
	})
	w = testutil.DoRequest(router, "POST", "/api/v1/payment-requests", body, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for unknown source line, got %d: %s", w.Code, w.Body.String())
	}

	// no approved sources at all
	body = dnttHeader("PYC/NOPE/2026/01/0001", []map[string]interface{}{
		{"source_line_id": sourceLineID, "pyc_request_id": "PR-1", "quantity": 1, "unit_price": 100, "vat_value": 10},
	})
	w = testutil.DoRequest(router, "POST", "/api/v1/payment-requests", body, token)
	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected 404 when no selected request is approved, got %d: %s", w.Code, w.Body.String())
	}
}

func TestPaymentRequestStatusTransitions(t *testing.T) {
	router, _ := setupBackofficeTest(t)
	token := testutil.DefaultTestToken()

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
	w := testutil.DoRequest(router, "POST", "/api/v1/payment-requests", body, token)
	id := testutil.ParseResponse(w)["data"].(map[string]interface{})["id"].(string)

	w = testutil.DoRequest(router, "PATCH", "/api/v1/payment-requests/"+id+"/status",
		map[string]interface{}{"status": "approved"}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	approved := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if approved["approved_by"] != "admin@test.com" || approved["approved_at"] == nil {
		t.Errorf("Expected approval fields set: %v %v", approved["approved_by"], approved["approved_at"])
	}

	history := approved["status_history"].([]interface{})
	if len(history) != 2 {
		t.Fatalf("Expected 2 ledger entries, got %d", len(history))
	}

	w = testutil.DoRequest(router, "PATCH", "/api/v1/payment-requests/"+id+"/status",
		map[string]interface{}{"status": "rejected"}, token)
	rejected := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if rejected["approved_by"] != nil {
		t.Errorf("Expected approved_by cleared, got %v", rejected["approved_by"])
	}
}

func TestPaymentRequestDefaultReason(t *testing.T) {
	router, _ := setupBackofficeTest(t)
	token := testutil.DefaultTestToken()

	createPYC(t, router, token, map[string]interface{}{
		"id":    "PR-1",
		"title": "Cement order",
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

	w := testutil.DoRequest(router, "POST", "/api/v1/payment-requests", body, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if data["payment_reason"] != "Payment for Cement order" {
		t.Errorf("Expected defaulted reason, got %v", data["payment_reason"])
	}
	if data["requester"] != "admin@test.com" {
		t.Errorf("Expected requester defaulted to actor, got %v", data["requester"])
	}
}
