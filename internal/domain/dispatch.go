package domain

// DispatchRecipient is one sanitized entry of a dispatch payload. Receiver is
// the chain's configured receiver contract, Beneficiary the end wallet.
type DispatchRecipient struct {
	Receiver      string  `json:"receiver"`
	Beneficiary   string  `json:"beneficiary"`
	ChainSelector string  `json:"chainSelector"`
	AssetSymbol   string  `json:"assetSymbol"`
	UsdShare      float64 `json:"usdShare"`
	AssetAmount   float64 `json:"assetAmount"`
}

// RouterDiagnostic is the best-effort probe of one destination chain's router
// contract. TypeAndVersion is "missing-chain" or "unreachable" on failure.
type RouterDiagnostic struct {
	Selector       string `json:"selector"`
	Router         string `json:"router"`
	TypeAndVersion string `json:"typeAndVersion"`
}

// DispatchReceipt is the response of the simulated dispatch boundary.
//
// This is a simulation artifact: MessageID and SimulatedTxHash are fabricated
// identifiers, no transaction is submitted anywhere, and Eta is a fixed
// five-minute projection. Callers must not treat the receipt as evidence of
// an on-chain transfer.
type DispatchReceipt struct {
	MessageID       string              `json:"messageId"`
	Lane            string              `json:"lane" example:"Monad ⇒ Base Sepolia"`
	Eta             string              `json:"eta"`
	TotalUsd        float64             `json:"totalUsd"`
	Recipients      []DispatchRecipient `json:"recipients"`
	ChainSummary    []ChainSummary      `json:"chainSummary"`
	SimulatedTxHash string              `json:"simulatedTxHash"`
	Routers         []RouterDiagnostic  `json:"routers"`
}
