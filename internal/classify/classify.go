package classify

import (
	"github.com/dvloznov/condo-os/internal/domain"
)

// Keyword tables are folded (lower-case, no accents) and checked in order;
// the first rule with a matching keyword wins.

var ledgerTypeRules = []rule{
	{string(domain.LedgerPaymentReceived), []string{"pago", "abono", "deposito", "transferencia recibida", "cobro recibido", "payment"}},
	{string(domain.LedgerLateFee), []string{"mora", "recargo", "multa", "interes", "penalidad", "legal", "abogado", "judicial", "cobranza", "late fee"}},
	{string(domain.LedgerWorkAssessment), []string{"extraordinari", "derrama", "obras", "obra de", "assessment"}},
	{string(domain.LedgerFeeCall), []string{"cuota", "mantenimiento", "administracion", "mensual", "trimestr", "fee"}},
	{string(domain.LedgerAdjustment), []string{"ajuste", "correccion", "nota de credito", "anulacion", "reverso", "adjust"}},
	{string(domain.LedgerPrivateCharge), []string{"cargo", "reparacion", "consumo", "privad", "charge"}},
}

var ledgerCategoryRules = []rule{
	{string(domain.LedgerCategoryPayment), []string{"pago", "abono", "deposito", "transferencia recibida", "payment"}},
	{string(domain.LedgerCategoryLegalFees), []string{"abogado", "legal", "judicial", "cobranza"}},
	{string(domain.LedgerCategoryPenaltiesFees), []string{"mora", "recargo", "multa", "interes", "penalidad", "late fee"}},
	{string(domain.LedgerCategoryExtraordinaryAssessment), []string{"extraordinari", "derrama", "obras", "obra de", "assessment"}},
}

var expenseCategoryRules = []rule{
	{string(domain.ExpenseUtilities), []string{"luz", "agua", "electric", "energia", "gas natural", "suministro", "telefon", "internet", "utilities"}},
	{string(domain.ExpenseCleaning), []string{"limpieza", "aseo", "conserje", "cleaning"}},
	{string(domain.ExpenseMaintenance), []string{"mantenimiento", "reparacion", "ascensor", "jardin", "fumigacion", "pintura", "maintenance"}},
	{string(domain.ExpenseManagementFee), []string{"administracion", "administrador", "honorario", "gestion", "management"}},
	{string(domain.ExpenseBankCharges), []string{"bancari", "banco", "comision", "bank"}},
	{string(domain.ExpenseInsurance), []string{"seguro", "poliza", "insurance"}},
	{string(domain.ExpenseCapitalWorks), []string{"obras", "obra civil", "obra de", "derrama", "rehabilitacion", "remodelacion", "impermeabilizacion", "capital"}},
	{string(domain.ExpenseLegalCompliance), []string{"legal", "abogado", "notari", "registro", "impuesto", "tasa", "licencia", "permiso", "compliance"}},
	{string(domain.ExpensePenaltiesCollections), []string{"mora", "multa", "recargo", "cobranza", "penalidad", "penalt", "collection"}},
}

var movementCategoryRules = []rule{
	{string(domain.MovementTransfer), []string{"transferencia", "traspaso", "transfer"}},
	{string(domain.MovementManagementFee), []string{"administracion", "administrador", "honorario"}},
	{string(domain.MovementCleaning), []string{"limpieza", "aseo", "conserje"}},
	{string(domain.MovementUtilities), []string{"luz", "agua", "electric", "energia", "telefon", "internet", "gas natural"}},
	{string(domain.MovementCapitalWorks), []string{"obras", "obra civil", "obra de", "derrama", "remodelacion", "rehabilitacion"}},
	{string(domain.MovementBankCharges), []string{"comision", "cargo bancario", "gasto bancario", "gastos bancarios", "itf", "bank fee"}},
	{string(domain.MovementInsurance), []string{"seguro", "poliza"}},
	{string(domain.MovementOwnerPayment), []string{"pago", "cuota", "abono", "deposito", "propietario", "apartamento", "apto"}},
}

// LedgerType classifies a unit ledger description. Defaults to Fee Call.
func LedgerType(desc string) domain.LedgerType {
	return domain.LedgerType(firstMatch(desc, ledgerTypeRules, string(domain.LedgerFeeCall)))
}

// LedgerCategory classifies a unit ledger description. Defaults to
// Common Charges.
func LedgerCategory(desc string) domain.LedgerCategory {
	return domain.LedgerCategory(firstMatch(desc, ledgerCategoryRules, string(domain.LedgerCategoryCommonCharges)))
}

// ExpenseCategory classifies an expense section header or a budget line
// label. Defaults to Other.
func ExpenseCategory(header string) domain.ExpenseCategory {
	return domain.ExpenseCategory(firstMatch(header, expenseCategoryRules, string(domain.ExpenseOther)))
}

// MovementCategory classifies a cash or bank movement description.
// Defaults to Other.
func MovementCategory(desc string) domain.MovementCategory {
	return domain.MovementCategory(firstMatch(desc, movementCategoryRules, string(domain.MovementOther)))
}
