package parsers

import (
	"strings"
	"testing"
)

func TestParseVCF_SingleEntry(t *testing.T) {
	input := `BEGIN:VCARD
VERSION:4.0
FN:Jane Cooper
ORG:Initech
TITLE:VP of Sales
EMAIL:jane@initech.com
TEL;TYPE=work,voice:+1 555 0100
TEL;TYPE=cell,voice:+1 555 0101
ADR;TYPE=WORK:;;42 Main St;Springfield;IL;62704
URL:https://initech.com
NOTE:Met at the trade show
CATEGORIES:Work,Sales
END:VCARD
`

	outcome := ParseVCF(input)

	if len(outcome.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", outcome.Errors)
	}
	if len(outcome.Contacts) != 1 {
		t.Fatalf("expected 1 contact, got %d", len(outcome.Contacts))
	}

	c := outcome.Contacts[0]
	if c.Name != "Jane Cooper" {
		t.Errorf("expected name 'Jane Cooper', got '%s'", c.Name)
	}
	if c.Company != "Initech" {
		t.Errorf("expected company 'Initech', got '%s'", c.Company)
	}
	if c.Title != "VP of Sales" {
		t.Errorf("expected title 'VP of Sales', got '%s'", c.Title)
	}
	if c.Email != "jane@initech.com" {
		t.Errorf("expected email 'jane@initech.com', got '%s'", c.Email)
	}
	if c.PhoneWork != "+1 555 0100" {
		t.Errorf("expected work phone '+1 555 0100', got '%s'", c.PhoneWork)
	}
	if c.PhoneMobile != "+1 555 0101" {
		t.Errorf("expected mobile phone '+1 555 0101', got '%s'", c.PhoneMobile)
	}
	if c.Address != "42 Main St, Springfield, IL, 62704" {
		t.Errorf("unexpected address: %s", c.Address)
	}
	if c.Website != "https://initech.com" {
		t.Errorf("unexpected website: %s", c.Website)
	}
	if c.Notes != "Met at the trade show" {
		t.Errorf("unexpected notes: %s", c.Notes)
	}
	if len(c.Groups) != 2 || c.Groups[0] != "Work" || c.Groups[1] != "Sales" {
		t.Errorf("unexpected groups: %v", c.Groups)
	}
}

func TestParseVCF_MultipleEntries(t *testing.T) {
	input := `BEGIN:VCARD
FN:Alpha One
END:VCARD
BEGIN:VCARD
FN:Beta Two
END:VCARD
BEGIN:VCARD
FN:Gamma Three
END:VCARD
`

	outcome := ParseVCF(input)

	if len(outcome.Contacts) != 3 {
		t.Fatalf("expected 3 contacts, got %d", len(outcome.Contacts))
	}
	if len(outcome.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", outcome.Errors)
	}
	if outcome.Contacts[1].Name != "Beta Two" {
		t.Errorf("expected second contact 'Beta Two', got '%s'", outcome.Contacts[1].Name)
	}
}

func TestParseVCF_EntryWithoutName(t *testing.T) {
	input := `BEGIN:VCARD
FN:Has Name
END:VCARD
BEGIN:VCARD
ORG:Nameless Corp
END:VCARD
BEGIN:VCARD
FN:Also Named
END:VCARD
`

	outcome := ParseVCF(input)

	if len(outcome.Contacts) != 2 {
		t.Fatalf("expected 2 contacts, got %d", len(outcome.Contacts))
	}
	if len(outcome.Errors) != 1 {
		t.Fatalf("expected 1 error, got %d", len(outcome.Errors))
	}
	if outcome.Errors[0].RowIndex != 2 {
		t.Errorf("expected error at entry 2, got %d", outcome.Errors[0].RowIndex)
	}
	if !strings.Contains(outcome.Errors[0].Message, "does not contain a name") {
		t.Errorf("unexpected error message: %s", outcome.Errors[0].Message)
	}
}

func TestParseVCF_NotAVCF(t *testing.T) {
	outcome := ParseVCF("this is just some text, not a vcard")

	if len(outcome.Contacts) != 0 {
		t.Fatalf("expected no contacts, got %d", len(outcome.Contacts))
	}
	if len(outcome.Errors) != 1 {
		t.Fatalf("expected 1 file-level error, got %d", len(outcome.Errors))
	}
	if outcome.Errors[0].RowIndex != 0 {
		t.Errorf("expected file-level error (index 0), got %d", outcome.Errors[0].RowIndex)
	}
}

func TestParseVCF_EmptyInput(t *testing.T) {
	outcome := ParseVCF("")

	if len(outcome.Contacts) != 0 || len(outcome.Errors) != 0 {
		t.Fatalf("expected empty outcome, got %d contacts and %d errors",
			len(outcome.Contacts), len(outcome.Errors))
	}
}

func TestParseVCF_UntypedPhoneFallsBackToWork(t *testing.T) {
	input := `BEGIN:VCARD
FN:Plain Phone
TEL;VOICE:+44 20 7946 0000
END:VCARD
`

	outcome := ParseVCF(input)

	if len(outcome.Contacts) != 1 {
		t.Fatalf("expected 1 contact, got %d", len(outcome.Contacts))
	}
	if outcome.Contacts[0].PhoneWork != "+44 20 7946 0000" {
		t.Errorf("expected untyped TEL in work slot, got '%s'", outcome.Contacts[0].PhoneWork)
	}
	if outcome.Contacts[0].PhoneMobile != "" {
		t.Errorf("expected empty mobile, got '%s'", outcome.Contacts[0].PhoneMobile)
	}
}

func TestParseVCF_SecondUntypedPhoneDoesNotOverwrite(t *testing.T) {
	input := `BEGIN:VCARD
FN:Two Phones
TEL;VOICE:111
TEL;VOICE:222
END:VCARD
`

	outcome := ParseVCF(input)

	// The second untyped line is dropped, not promoted to mobile. This
	// tie-break is part of the observed contract.
	if outcome.Contacts[0].PhoneWork != "111" {
		t.Errorf("expected first untyped TEL kept, got '%s'", outcome.Contacts[0].PhoneWork)
	}
	if outcome.Contacts[0].PhoneMobile != "" {
		t.Errorf("expected mobile untouched, got '%s'", outcome.Contacts[0].PhoneMobile)
	}
}

func TestParseVCF_ParameterisedName(t *testing.T) {
	input := `BEGIN:VCARD
FN;CHARSET=UTF-8:Søren Holm
END:VCARD
`

	outcome := ParseVCF(input)

	if len(outcome.Contacts) != 1 {
		t.Fatalf("expected 1 contact, got %d", len(outcome.Contacts))
	}
	if outcome.Contacts[0].Name != "Søren Holm" {
		t.Errorf("unexpected name: %s", outcome.Contacts[0].Name)
	}
}

func TestParseVCF_WebsiteWithColons(t *testing.T) {
	input := `BEGIN:VCARD
FN:URL Case
EMAIL;TYPE=work:work@example.com
END:VCARD
`

	outcome := ParseVCF(input)

	if outcome.Contacts[0].Email != "work@example.com" {
		t.Errorf("expected value after first colon, got '%s'", outcome.Contacts[0].Email)
	}
}

func TestParseVCF_AddressDropsStructuredPrefix(t *testing.T) {
	input := `BEGIN:VCARD
FN:Addr Case
ADR;TYPE=HOME:PO Box 99;Suite 4;10 Downing St;London;;SW1A
END:VCARD
`

	outcome := ParseVCF(input)

	// PO box and extended address are dropped, empty components skipped.
	if outcome.Contacts[0].Address != "10 Downing St, London, SW1A" {
		t.Errorf("unexpected address: %s", outcome.Contacts[0].Address)
	}
}

func TestParseVCF_CRLFLineEndings(t *testing.T) {
	input := "BEGIN:VCARD\r\nFN:Carriage Return\r\nORG:Windows Inc\r\nEND:VCARD\r\n"

	outcome := ParseVCF(input)

	if len(outcome.Contacts) != 1 {
		t.Fatalf("expected 1 contact, got %d", len(outcome.Contacts))
	}
	if outcome.Contacts[0].Name != "Carriage Return" {
		t.Errorf("unexpected name: %s", outcome.Contacts[0].Name)
	}
	if outcome.Contacts[0].Company != "Windows Inc" {
		t.Errorf("unexpected company: %s", outcome.Contacts[0].Company)
	}
}

func TestParseVCF_CountsMatchValidAndInvalidEntries(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 5; i++ {
		sb.WriteString("BEGIN:VCARD\nFN:Valid Person\nEND:VCARD\n")
	}
	for i := 0; i < 3; i++ {
		sb.WriteString("BEGIN:VCARD\nORG:No Name Co\nEND:VCARD\n")
	}

	outcome := ParseVCF(sb.String())

	if len(outcome.Contacts) != 5 {
		t.Errorf("expected 5 contacts, got %d", len(outcome.Contacts))
	}
	if len(outcome.Errors) != 3 {
		t.Errorf("expected 3 errors, got %d", len(outcome.Errors))
	}
}
