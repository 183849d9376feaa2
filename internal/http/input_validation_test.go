package handlers_test

import (
	"net/http"
	"testing"
)

func TestProofRejectsNonDocumentReference(t *testing.T) {
	app, db := newPortal(t)
	bindSession(t, db, "sid-v", "distributor")

	// ORD-1003 awaits payment from the distributor, but a javascript:
	// reference is not a document.
	resp := post(t, app, "/order/ORD-1003/proof", "sid-v", "proofUrl=javascript:alert(1)")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("want 400 for bad proof ref, got %d", resp.StatusCode)
	}
	var status string
	if err := db.Get(&status, `SELECT status FROM orders WHERE id='ORD-1003'`); err != nil {
		t.Fatal(err)
	}
	if status != "Payment Requested" {
		t.Fatalf("rejected proof still moved the order: %s", status)
	}

	resp = post(t, app, "/order/ORD-1003/proof", "sid-v", "proofUrl=/media/proofs/1003.png")
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("want 302 for valid proof, got %d", resp.StatusCode)
	}
}

func TestMalformedOrderIDIsNotFound(t *testing.T) {
	app, db := newPortal(t)
	bindSession(t, db, "sid-v2", "distributor")

	resp := get(t, app, "/order/..%2F..%2Fetc", "sid-v2")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("want 404 for malformed id, got %d", resp.StatusCode)
	}
}
