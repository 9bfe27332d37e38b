package domain

// SheetType identifies which import pipeline applies to a worksheet.
type SheetType string

const (
	SheetUnits        SheetType = "units"
	SheetLedger       SheetType = "ledger"
	SheetExpenses     SheetType = "expenses"
	SheetMovements    SheetType = "movements"
	SheetBudget       SheetType = "budget"
	SheetUnrecognized SheetType = ""
)

// SheetTypes lists the recognized sheet types in detection priority order.
var SheetTypes = []SheetType{SheetUnits, SheetBudget, SheetExpenses, SheetLedger, SheetMovements}

// LedgerType is the kind of a unit ledger transaction.
type LedgerType string

const (
	LedgerPaymentReceived LedgerType = "Payment Received"
	LedgerLateFee         LedgerType = "Late Fee"
	LedgerWorkAssessment  LedgerType = "Work Assessment"
	LedgerFeeCall         LedgerType = "Fee Call"
	LedgerAdjustment      LedgerType = "Adjustment"
	LedgerPrivateCharge   LedgerType = "Private Charge"
)

// LedgerCategory groups ledger transactions for reporting.
type LedgerCategory string

const (
	LedgerCategoryPayment                 LedgerCategory = "Payment"
	LedgerCategoryLegalFees               LedgerCategory = "Legal Fees"
	LedgerCategoryPenaltiesFees           LedgerCategory = "Penalties & Fees"
	LedgerCategoryExtraordinaryAssessment LedgerCategory = "Extraordinary Assessment"
	LedgerCategoryCommonCharges           LedgerCategory = "Common Charges"
)

// ExpenseCategory is the building expense taxonomy. Budget departments
// reuse it.
type ExpenseCategory string

const (
	ExpenseUtilities            ExpenseCategory = "Utilities"
	ExpenseCleaning             ExpenseCategory = "Cleaning"
	ExpenseMaintenance          ExpenseCategory = "Maintenance"
	ExpenseManagementFee        ExpenseCategory = "Management Fee"
	ExpenseBankCharges          ExpenseCategory = "Bank Charges"
	ExpenseInsurance            ExpenseCategory = "Insurance"
	ExpenseCapitalWorks         ExpenseCategory = "Capital Works"
	ExpenseLegalCompliance      ExpenseCategory = "Legal & Compliance"
	ExpensePenaltiesCollections ExpenseCategory = "Penalties & Collections"
	ExpenseOther                ExpenseCategory = "Other"
)

// MovementCategory classifies cash and bank account movements.
type MovementCategory string

const (
	MovementTransfer      MovementCategory = "Transfer"
	MovementManagementFee MovementCategory = "Management Fee"
	MovementCleaning      MovementCategory = "Cleaning"
	MovementUtilities     MovementCategory = "Utilities"
	MovementCapitalWorks  MovementCategory = "Capital Works"
	MovementBankCharges   MovementCategory = "Bank Charges"
	MovementInsurance     MovementCategory = "Insurance"
	MovementOwnerPayment  MovementCategory = "Owner Payment"
	MovementOther         MovementCategory = "Other"
)

// MovementKind tells how a movement affected its account balance.
type MovementKind string

const (
	MovementOpeningBalance MovementKind = "Opening Balance"
	MovementCredit         MovementKind = "Credit"
	MovementDebit          MovementKind = "Debit"
)

// Account keys used by the movement extractors.
const (
	AccountPettyCash   = "caja_chica"
	AccountBank        = "banco"
	AccountReserveFund = "fondo_reserva"
)

// AccountNames maps account keys to their display names.
var AccountNames = map[string]string{
	AccountPettyCash:   "Caja Chica",
	AccountBank:        "Banco",
	AccountReserveFund: "Fondo de Reserva",
}
