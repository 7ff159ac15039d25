package model

import (
	"fmt"
	"io"

	"github.com/biter777/countries"
	"github.com/shopspring/decimal"
	"github.com/speedata/einvoice"
)

// countryID returns a two letter alpha code for the given country
func countryID(country string) string {
	c := countries.ByName(country)
	if c == countries.Unknown {
		return "DE" // default
	}
	return c.Alpha2()
}

var one = decimal.NewFromInt(1)

// WriteEInvoiceXML renders a single invoice as EN 16931 e-invoice XML.
// The invoice carries no line items of its own, so the full amount is
// emitted as one untaxed line with the description as the item text.
func (s *Store) WriteEInvoiceXML(inv *Invoice, ownerID uint, w io.Writer) error {
	settings, err := s.LoadSettings(ownerID)
	if err != nil {
		return err
	}

	buyer := einvoice.Party{}
	if inv.Client != nil {
		buyer = einvoice.Party{
			Name: inv.Client.Name,
			PostalAddress: &einvoice.PostalAddress{
				CountryID: countryID(inv.Client.Country),
			},
			DefinedTradeContact: []einvoice.DefinedTradeContact{{
				PersonName: inv.Client.Name,
				EMail:      inv.Client.Email,
			}},
		}
	}

	zi := einvoice.Invoice{
		InvoiceNumber:       inv.InvoiceNumber,
		InvoiceTypeCode:     380,
		Profile:             einvoice.CProfileEN16931,
		InvoiceDate:         inv.IssueDate,
		InvoiceCurrencyCode: "EUR",
		TaxCurrencyCode:     "EUR",
		Notes: []einvoice.Note{{
			Text: inv.Notes,
		}},
		Seller: einvoice.Party{
			Name:              settings.CompanyName,
			VATaxRegistration: settings.VATID,
			PostalAddress: &einvoice.PostalAddress{
				Line1:        settings.Address1,
				Line2:        settings.Address2,
				City:         settings.City,
				PostcodeCode: settings.ZIP,
				CountryID:    countryID(settings.CountryCode),
			},
			DefinedTradeContact: []einvoice.DefinedTradeContact{{
				PersonName: settings.InvoiceContact,
				EMail:      settings.InvoiceEMail,
			}},
		},
		Buyer: buyer,
		PaymentMeans: []einvoice.PaymentMeans{
			{
				TypeCode:                                      30,
				PayeePartyCreditorFinancialAccountIBAN:        settings.BankIBAN,
				PayeePartyCreditorFinancialAccountName:        settings.BankName,
				PayeeSpecifiedCreditorFinancialInstitutionBIC: settings.BankBIC,
			},
		},
		SpecifiedTradePaymentTerms: []einvoice.SpecifiedTradePaymentTerms{{
			DueDate: inv.DueDate,
		}},
	}

	itemName := inv.Description
	if itemName == "" {
		itemName = fmt.Sprintf("Invoice %s", inv.InvoiceNumber)
	}
	zi.InvoiceLines = append(zi.InvoiceLines, einvoice.InvoiceLine{
		LineID:                   "1",
		ItemName:                 itemName,
		BilledQuantity:           one,
		BilledQuantityUnit:       "C62",
		NetPrice:                 inv.Amount,
		TaxRateApplicablePercent: decimal.Zero,
		Total:                    inv.Amount,
		TaxTypeCode:              "VAT",
		TaxCategoryCode:          "E",
	})
	zi.UpdateApplicableTradeTax(nil)
	zi.UpdateTotals()

	return zi.Write(w)
}
