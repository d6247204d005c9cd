package payfast

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const defaultNameFirst = "Customer"

// PaymentRequest is the body of POST /payfast-initiate. Amount is ZAR.
type PaymentRequest struct {
	Amount          decimal.NullDecimal `json:"amount"`
	ItemName        string              `json:"itemName"`
	ItemDescription string              `json:"itemDescription,omitempty"`
	Email           string              `json:"email,omitempty"`
	NameFirst       string              `json:"nameFirst,omitempty"`
	NameLast        string              `json:"nameLast,omitempty"`
	UserID          string              `json:"userId,omitempty"`
	LicenseType     string              `json:"licenseType"`
}

// Merchant holds everything needed to sign a checkout for one merchant account.
type Merchant struct {
	ID               string
	Key              string
	Passphrase       string
	ProcessURL       string
	ReturnURL        string
	CancelURL        string
	NotifyURL        string
	PlaceholderEmail string
}

func (m Merchant) hasCredentials() bool {
	return m.ID != "" && m.Key != "" && m.Passphrase != ""
}

type Checkout struct {
	PaymentURL  string   `json:"paymentUrl"`
	PaymentData *Payload `json:"paymentData"`
}

// BuildCheckout validates req and returns the signed form the payer is redirected
// with. Each call mints a new m_payment_id; nothing is persisted.
func BuildCheckout(m Merchant, req PaymentRequest) (*Checkout, error) {
	if !req.Amount.Valid || !req.Amount.Decimal.Round(2).IsPositive() {
		return nil, ErrInvalidAmount
	}
	if !m.hasCredentials() {
		return nil, ErrMissingCredentials
	}

	nameFirst := req.NameFirst
	if nameFirst == "" {
		nameFirst = defaultNameFirst
	}
	email := req.Email
	if email == "" {
		email = m.PlaceholderEmail
	}
	description := req.ItemDescription
	if description == "" {
		description = req.ItemName
	}

	p := &Payload{}
	p.Set(FieldMerchantID, m.ID)
	p.Set(FieldMerchantKey, m.Key)
	p.Set(FieldReturnURL, m.ReturnURL)
	p.Set(FieldCancelURL, m.CancelURL)
	p.Set(FieldNotifyURL, m.NotifyURL)
	p.Set(FieldNameFirst, nameFirst)
	p.Set(FieldNameLast, req.NameLast)
	p.Set(FieldEmailAddress, email)
	p.Set(FieldMPaymentID, uuid.NewString())
	p.Set(FieldAmount, req.Amount.Decimal.StringFixed(2))
	p.Set(FieldItemName, req.ItemName)
	p.Set(FieldItemDescription, description)
	p.Set(FieldCustomStr1, req.UserID)
	p.Set(FieldCustomStr2, req.LicenseType)
	p.Sign(m.Passphrase)

	return &Checkout{PaymentURL: m.ProcessURL, PaymentData: p}, nil
}
