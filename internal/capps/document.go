// =============================================================================
// CAPPS Converter - Document Builder
// =============================================================================
//
// Assembles OutputItems into the CAPPS bulk-upload document. The element
// names, nesting and attribute placement are fixed by the CAPPS contract and
// must be reproduced exactly for the receiving system to accept the upload:
//
//   <capssUpload xmlns:xsi="...">
//     <bulkUploadData licenseNumber="...">
//       <propertyTransaction>            <!-- one per reported item -->
//         <transactionTime>2025-11-10T11:50:05</transactionTime>
//         <customer>...</customer>       <!-- every field "on file" -->
//         <store><employeeName>...</employeeName></store>
//         <items><item>...</item></items>
//       </propertyTransaction>
//     </bulkUploadData>
//   </capssUpload>
//
// Every customer identification field carries the literal "on file": SB 1317
// requires the upload to reference, not contain, personal data. The date of
// birth and fingerprint fields use an xsi:nil marker plus an "on file" text
// companion instead of any real value.
//
// =============================================================================

package capps

import (
	"time"

	"github.com/storeops/capps-converter/internal/types"
)

// Fixed values required by the CAPPS contract.
const (
	xsiNamespace = "http://www.w3.org/2001/XMLSchema-instance"

	// OnFile is the SB 1317 data-minimization literal.
	OnFile = "on file"

	// TransactionTimeLayout is the normalized CAPPS timestamp form.
	TransactionTimeLayout = "2006-01-02T15:04:05"
)

// Header carries the run-level fields stamped on the document.
type Header struct {
	// LicenseNumber is the store's secondhand-dealer license.
	LicenseNumber string

	// EmployeeName is reported on every transaction's store block.
	EmployeeName string
}

// FormatTransactionTime converts a parsed POS timestamp into the normalized
// CAPPS representation.
func FormatTransactionTime(t time.Time) string {
	return t.Format(TransactionTimeLayout)
}

// BuildDocument assembles the upload document for the given items. The
// returned tree is ready for Marshal; it owns no references back into items.
func BuildDocument(items []types.OutputItem, header Header) *Element {
	bulk := NewElement("bulkUploadData").WithAttr("licenseNumber", header.LicenseNumber)

	for _, item := range items {
		bulk.Add(buildTransaction(item, header))
	}

	return NewElement("capssUpload").
		WithAttr("xmlns:xsi", xsiNamespace).
		Add(bulk)
}

// buildTransaction emits one propertyTransaction block. CAPPS groups by
// transaction, but the POS export is one item per transaction row, so the
// mapping is one-to-one.
func buildTransaction(item types.OutputItem, header Header) *Element {
	tx := NewElement("propertyTransaction")

	tx.Add(Text("transactionTime", item.TransactionTime))
	tx.Add(buildCustomer())
	tx.Add(NewElement("store").Add(Text("employeeName", header.EmployeeName)))
	tx.Add(NewElement("items").Add(buildItem(item)))

	return tx
}

// buildCustomer emits the customer block with every identification field set
// to the "on file" literal.
func buildCustomer() *Element {
	customer := NewElement("customer")

	customer.Add(
		Text("custLastName", OnFile),
		Text("custFirstName", OnFile),
		Text("custMiddleName", OnFile),
		Text("gender", OnFile),
		Text("race", OnFile),
		Text("hairColor", OnFile),
		Text("eyeColor", OnFile),
		Text("height", OnFile),
		Text("weight", OnFile),
	)

	// Birth date: nil marker plus the "on file" text companion. No real
	// date ever appears here.
	customer.Add(
		NewElement("dateOfBirth").WithAttr("xsi:nil", "true"),
		Text("dateOfBirthText", OnFile),
	)

	customer.Add(
		Text("streetAddress", OnFile),
		Text("city", OnFile),
		Text("state", OnFile),
		Text("postalCode", OnFile),
		Text("phoneNumber", OnFile),
		Text("nonUSAddress", OnFile),
	)

	customer.Add(NewElement("id").Add(
		Text("type", OnFile),
		Text("number", OnFile),
		Text("dateOfIssueText", OnFile),
		Text("issueState", OnFile),
		Text("issueCountry", OnFile),
		Text("yearOfExpirationText", OnFile),
	))

	customer.Add(
		NewElement("noFinger").WithAttr("xsi:nil", "true"),
		Text("noFingerText", OnFile),
		Text("signature", OnFile),
		Text("fingerprint", OnFile),
	)

	return customer
}

// buildItem emits one item block with the mapped and resolved fields plus
// the constants the schema requires.
func buildItem(item types.OutputItem) *Element {
	el := NewElement("item")

	el.Add(
		Text("type", item.TransactionType),
		Text("loanBuyNumber", item.LoanBuyNumber),
		Text("amount", item.Amount),
		Text("article", item.Article),
		Text("brand", item.Brand),
		Text("model", item.Model),
	)

	// A serial of "0" is AIMsi's placeholder for "none"; omit the element.
	if item.SerialNumber != "" && item.SerialNumber != "0" {
		el.Add(Text("serialNumber", item.SerialNumber))
	}

	el.Add(
		Text("description", item.Description),
		Text("inscription", "None"),
		Text("ownerAppliedNumber", "None"),
		Text("pattern", "None"),
		Text("color", item.Color),
		Text("material", "Unknown"),
		Text("itemSize", "Unknown"),
		Text("sizeUnit", "Unknown"),
	)

	return el
}
