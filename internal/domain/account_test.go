package domain

import "testing"

func TestCheckPIN(t *testing.T) {
	a := &Account{PIN: "1234"}
	if !a.CheckPIN("1234") {
		t.Fatal("PIN correto deveria passar")
	}
	for _, pin := range []string{"4321", "123", "12345", ""} {
		if a.CheckPIN(pin) {
			t.Fatalf("PIN %q não deveria passar", pin)
		}
	}
}

func TestHasSufficientFunds(t *testing.T) {
	a := &Account{Balance: 10000}
	if !a.HasSufficientFunds(10000) {
		t.Fatal("saldo exato deveria bastar")
	}
	if !a.HasSufficientFunds(1) {
		t.Fatal("valor menor deveria bastar")
	}
	if a.HasSufficientFunds(10001) {
		t.Fatal("valor acima do saldo não deveria bastar")
	}
}
