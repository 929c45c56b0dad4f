package bank

import (
	"testing"
)

func TestAccountNumberProvider(t *testing.T) {
	provider := NewAccountNumberProvider()

	for i := 0; i < 1000; i++ {
		accountNumber := provider.NextAccountNumber()

		if len(accountNumber) != 10 {
			t.Fatalf("expected 10-digit account number, got %q", accountNumber)
		}

		if accountNumber[0] == '0' {
			t.Fatalf("account number must not have a leading zero, got %q", accountNumber)
		}

		for _, r := range accountNumber {
			if r < '0' || r > '9' {
				t.Fatalf("account number must be numeric, got %q", accountNumber)
			}
		}
	}
}

func TestIDProviderGeneratesDistinctIDs(t *testing.T) {
	provider, err := NewIDProvider(0)

	if err != nil {
		t.Fatal(err)
	}

	seen := make(map[int64]bool)

	for i := 0; i < 1000; i++ {
		id := provider.NextID()

		if seen[id] {
			t.Fatalf("ID %d generated twice", id)
		}

		seen[id] = true
	}
}
