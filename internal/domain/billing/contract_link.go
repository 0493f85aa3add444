package billing

import (
	"github.com/propledger/backend/internal/domain/estate"
	"github.com/propledger/backend/internal/domain/shared"
)

// ValidateContractLink checks whether a bill may be linked to a vendor
// contract. The contract's vendor must be the bill's contact, and when both
// sides name a project the projects must be the same.
func ValidateContractLink(doc *Document, contract *estate.Contract) error {
	if doc == nil || contract == nil {
		return shared.NewDomainError("INVALID_CONTRACT_LINK", "Document and contract are required")
	}
	if !doc.IsBill() {
		return shared.NewDomainError("INVALID_CONTRACT_LINK", "Only bills can be linked to vendor contracts")
	}
	if contract.VendorID != doc.ContactID {
		return shared.NewDomainError("CONTRACT_VENDOR_MISMATCH", "Contract belongs to a different vendor")
	}
	docProject := doc.Allocation.ProjectID
	if docProject != nil && contract.ProjectID != nil && *docProject != *contract.ProjectID {
		return shared.NewDomainError("CONTRACT_PROJECT_MISMATCH", "Bill and contract reference a different project")
	}
	return nil
}

// LinkContract links a bill to a contract after validation. When the
// contract names a project and the bill has no allocation yet, the bill's
// allocation is back-filled from the contract.
func LinkContract(doc *Document, contract *estate.Contract) error {
	if err := ValidateContractLink(doc, contract); err != nil {
		return err
	}
	if contract.ProjectID != nil && doc.Allocation.Kind == AllocationKindNone {
		alloc, err := ProjectAllocation(*contract.ProjectID)
		if err != nil {
			return err
		}
		doc.Allocation = alloc
	}
	id := contract.ID
	doc.ContractID = &id
	doc.Touch()
	doc.IncrementVersion()
	return nil
}

// RevalidateContractLink re-checks an existing link after the document's
// contact or project changed. A stale link is cleared silently instead of
// being left invalid; a healthy link is kept. Returns true when the link was
// cleared.
func RevalidateContractLink(doc *Document, contract *estate.Contract) bool {
	if doc.ContractID == nil {
		return false
	}
	if contract == nil || ValidateContractLink(doc, contract) != nil {
		doc.ClearContract()
		return true
	}
	return false
}
