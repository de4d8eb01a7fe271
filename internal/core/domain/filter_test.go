package domain_test

import (
	"testing"

	"github.com/autonomoapp/autonomo_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func testInvoices() []domain.Invoice {
	return []domain.Invoice{
		{InvoiceID: "3", InvoiceNumber: "F-2025-003", Concept: "Web redesign", ClientName: "Acme SL", Status: domain.InvoiceDraft},
		{InvoiceID: "2", InvoiceNumber: "F-2025-002", Concept: "Monthly retainer", ClientName: "Beta Corp", Status: domain.InvoiceSent},
		{InvoiceID: "1", InvoiceNumber: "F-2025-001", Concept: "Logo design", ClientName: "Acme SL", Status: domain.InvoicePaid},
	}
}

func invoiceIDs(invoices []domain.Invoice) []string {
	ids := make([]string, len(invoices))
	for i, inv := range invoices {
		ids[i] = inv.InvoiceID
	}
	return ids
}

func TestFilterList_EmptyFilterReturnsAllInOrder(t *testing.T) {
	invoices := testInvoices()

	got := domain.FilterList(invoices, "", domain.StatusAll)

	assert.Equal(t, []string{"3", "2", "1"}, invoiceIDs(got), "newest-first order must be preserved")
}

func TestFilterList_SearchIsCaseInsensitiveSubstring(t *testing.T) {
	invoices := testInvoices()

	got := domain.FilterList(invoices, "ACME", domain.StatusAll)

	assert.Equal(t, []string{"3", "1"}, invoiceIDs(got))

	got = domain.FilterList(invoices, "retainer", domain.StatusAll)
	assert.Equal(t, []string{"2"}, invoiceIDs(got))
}

func TestFilterList_StatusIsExactMatch(t *testing.T) {
	invoices := testInvoices()

	got := domain.FilterList(invoices, "", string(domain.InvoicePaid))

	assert.Equal(t, []string{"1"}, invoiceIDs(got))
}

func TestFilterList_CombinesSearchAndStatus(t *testing.T) {
	invoices := testInvoices()

	got := domain.FilterList(invoices, "acme", string(domain.InvoiceDraft))

	assert.Equal(t, []string{"3"}, invoiceIDs(got))
}

func TestFilterList_Idempotent(t *testing.T) {
	invoices := testInvoices()

	once := domain.FilterList(invoices, "acme", domain.StatusAll)
	twice := domain.FilterList(once, "acme", domain.StatusAll)

	assert.Equal(t, once, twice, "filtering an already-filtered result must be a no-op")
}

func TestFilterList_DoesNotMutateInput(t *testing.T) {
	invoices := testInvoices()

	_ = domain.FilterList(invoices, "logo", string(domain.InvoicePaid))

	assert.Equal(t, []string{"3", "2", "1"}, invoiceIDs(invoices))
}

func TestFilterList_NoMatches(t *testing.T) {
	got := domain.FilterList(testInvoices(), "nonexistent", domain.StatusAll)

	assert.Empty(t, got)
	assert.NotNil(t, got)
}
