package tests

import (
	"testing"

	"ridehail/internal/service"
)

func TestOtpGenerateLengthAndDigits(t *testing.T) {
	for _, digits := range []int{4, 6, 9} {
		issuer := service.NewOtpIssuer(digits)
		for i := 0; i < 50; i++ {
			otp, err := issuer.Generate()
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}
			if len(otp) != digits {
				t.Fatalf("len(%q) = %d, want %d", otp, len(otp), digits)
			}
			if otp[0] == '0' {
				t.Fatalf("otp %q has a leading zero", otp)
			}
			for _, c := range otp {
				if c < '0' || c > '9' {
					t.Fatalf("otp %q contains non-digit %q", otp, c)
				}
			}
		}
	}
}

func TestOtpIssuerDefaultsInvalidLength(t *testing.T) {
	for _, digits := range []int{0, 3, 10, -2} {
		issuer := service.NewOtpIssuer(digits)
		otp, err := issuer.Generate()
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		if len(otp) != 6 {
			t.Errorf("NewOtpIssuer(%d): len = %d, want fallback 6", digits, len(otp))
		}
	}
}

func TestOtpHashRoundTrip(t *testing.T) {
	issuer := service.NewOtpIssuer(6)
	otp, err := issuer.Generate()
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	hash, err := service.HashOtp(otp)
	if err != nil {
		t.Fatalf("HashOtp() error = %v", err)
	}
	if hash == otp {
		t.Fatal("hash must not equal the plaintext code")
	}

	if !service.CompareOtp(hash, otp) {
		t.Error("CompareOtp rejected the correct code")
	}
	if service.CompareOtp(hash, "000000") {
		t.Error("CompareOtp accepted a wrong code")
	}
}
