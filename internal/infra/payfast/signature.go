package payfast

import (
	"crypto/md5"
	"crypto/subtle"
	"encoding/hex"
	"net/url"
	"sort"
	"strings"
)

// ITN and checkout field names used by this service.
const (
	FieldSignature       = "signature"
	FieldPassphrase      = "passphrase"
	FieldPaymentStatus   = "payment_status"
	FieldAmountGross     = "amount_gross"
	FieldPFPaymentID     = "pf_payment_id"
	FieldMPaymentID      = "m_payment_id"
	FieldCustomStr1      = "custom_str1"
	FieldCustomStr2      = "custom_str2"
	FieldMerchantID      = "merchant_id"
	FieldMerchantKey     = "merchant_key"
	FieldReturnURL       = "return_url"
	FieldCancelURL       = "cancel_url"
	FieldNotifyURL       = "notify_url"
	FieldNameFirst       = "name_first"
	FieldNameLast        = "name_last"
	FieldEmailAddress    = "email_address"
	FieldAmount          = "amount"
	FieldItemName        = "item_name"
	FieldItemDescription = "item_description"
)

// url.QueryEscape escapes these, browsers' encodeURIComponent does not.
var componentUnescaper = strings.NewReplacer(
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// encodeComponent percent-encodes s the way encodeURIComponent does (space -> %20).
func encodeComponent(s string) string {
	return strings.ReplaceAll(formValue(s), "+", "%20")
}

// formValue is encodeComponent with spaces written as '+'.
func formValue(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}

func sortedKeys(fields map[string]string) []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		if k == FieldSignature {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func joinFields(fields map[string]string, enc func(string) string) string {
	keys := sortedKeys(fields)
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+enc(fields[k]))
	}
	return strings.Join(pairs, "&")
}

// ParamString is the exact byte string that gets hashed into a signature.
func ParamString(fields map[string]string, passphrase string) string {
	s := joinFields(fields, formValue)
	if s != "" {
		s += "&"
	}
	return s + FieldPassphrase + "=" + encodeComponent(passphrase)
}

// Signature returns the lowercase hex md5 of ParamString. The signature key itself
// is never part of the input.
func Signature(fields map[string]string, passphrase string) string {
	sum := md5.Sum([]byte(ParamString(fields, passphrase)))
	return hex.EncodeToString(sum[:])
}

// VerifySignature recomputes the signature over fields and compares it with
// fields["signature"]. A missing signature never verifies.
func VerifySignature(fields map[string]string, passphrase string) bool {
	received, ok := fields[FieldSignature]
	if !ok || received == "" {
		return false
	}
	expected := Signature(fields, passphrase)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(received)) == 1
}

// ValidationBody is the form body posted back to the gateway's validate endpoint.
func ValidationBody(fields map[string]string) string {
	return joinFields(fields, encodeComponent)
}
