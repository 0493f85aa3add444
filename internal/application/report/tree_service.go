package report

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/propledger/backend/internal/domain/billing"
	"github.com/propledger/backend/internal/domain/estate"
	"github.com/shopspring/decimal"
)

// TreeFilter narrows the documents rolled up into the tree
type TreeFilter struct {
	Kind        billing.DocumentKind
	IssuedFrom  *time.Time
	IssuedTo    *time.Time
	Outstanding bool
}

// ContactNode is one party's rollup inside an allocation group
type ContactNode struct {
	ContactID   uuid.UUID       `json:"contact_id"`
	ContactName string          `json:"contact_name"`
	Count       int             `json:"count"`
	Amount      decimal.Decimal `json:"amount"`
	Paid        decimal.Decimal `json:"paid"`
	Balance     decimal.Decimal `json:"balance"`
}

// GroupNode is one allocation root's rollup: a project, a building, a staff
// member, or the unassigned bucket
type GroupNode struct {
	GroupID   uuid.UUID              `json:"group_id"`
	GroupName string                 `json:"group_name"`
	Kind      billing.AllocationKind `json:"kind"`
	Count     int                    `json:"count"`
	Amount    decimal.Decimal        `json:"amount"`
	Paid      decimal.Decimal        `json:"paid"`
	Balance   decimal.Decimal        `json:"balance"`
	Contacts  []ContactNode          `json:"contacts"`
}

// Tree is the two-level rollup: allocation groups, each broken down by
// contact. Totals are sums over the whole document set.
type Tree struct {
	Kind    billing.DocumentKind `json:"kind"`
	Count   int                  `json:"count"`
	Amount  decimal.Decimal      `json:"amount"`
	Paid    decimal.Decimal      `json:"paid"`
	Balance decimal.Decimal      `json:"balance"`
	Groups  []GroupNode          `json:"groups"`
}

// UnassignedGroupName labels documents carrying no allocation root
const UnassignedGroupName = "Unassigned"

// TreeService builds the allocation rollup tree over bills or invoices
type TreeService struct {
	docRepo      billing.DocumentRepository
	projectRepo  estate.ProjectRepository
	buildingRepo estate.BuildingRepository
	staffRepo    estate.StaffRepository
}

// NewTreeService creates a tree service
func NewTreeService(
	docRepo billing.DocumentRepository,
	projectRepo estate.ProjectRepository,
	buildingRepo estate.BuildingRepository,
	staffRepo estate.StaffRepository,
) *TreeService {
	return &TreeService{
		docRepo:      docRepo,
		projectRepo:  projectRepo,
		buildingRepo: buildingRepo,
		staffRepo:    staffRepo,
	}
}

// BuildTree groups the matching documents by allocation root and, inside
// each group, by contact. Groups that end up with no documents are pruned;
// groups and contacts sort by name ascending, with the unassigned bucket
// last.
func (s *TreeService) BuildTree(ctx context.Context, filter TreeFilter) (*Tree, error) {
	docs, err := s.docRepo.FindAll(ctx, billing.DocumentFilter{
		Kind:        filter.Kind,
		IssuedFrom:  filter.IssuedFrom,
		IssuedTo:    filter.IssuedTo,
		Outstanding: filter.Outstanding,
		PageSize:    -1, // All matches; the tree is built in memory
	})
	if err != nil {
		return nil, err
	}

	tree := &Tree{
		Kind:    filter.Kind,
		Amount:  decimal.Zero,
		Paid:    decimal.Zero,
		Balance: decimal.Zero,
	}
	groups := make(map[uuid.UUID]*GroupNode)
	contacts := make(map[uuid.UUID]map[uuid.UUID]*ContactNode)

	for i := range docs {
		doc := &docs[i]
		groupID := doc.Allocation.GroupID()

		group, ok := groups[groupID]
		if !ok {
			group = &GroupNode{
				GroupID: groupID,
				Kind:    doc.Allocation.Kind,
				Amount:  decimal.Zero,
				Paid:    decimal.Zero,
				Balance: decimal.Zero,
			}
			groups[groupID] = group
			contacts[groupID] = make(map[uuid.UUID]*ContactNode)
		}

		contact, ok := contacts[groupID][doc.ContactID]
		if !ok {
			contact = &ContactNode{
				ContactID:   doc.ContactID,
				ContactName: doc.ContactName,
				Amount:      decimal.Zero,
				Paid:        decimal.Zero,
				Balance:     decimal.Zero,
			}
			contacts[groupID][doc.ContactID] = contact
		}

		balance := doc.Balance()
		contact.Count++
		contact.Amount = contact.Amount.Add(doc.Amount)
		contact.Paid = contact.Paid.Add(doc.PaidAmount)
		contact.Balance = contact.Balance.Add(balance)
		group.Count++
		group.Amount = group.Amount.Add(doc.Amount)
		group.Paid = group.Paid.Add(doc.PaidAmount)
		group.Balance = group.Balance.Add(balance)
		tree.Count++
		tree.Amount = tree.Amount.Add(doc.Amount)
		tree.Paid = tree.Paid.Add(doc.PaidAmount)
		tree.Balance = tree.Balance.Add(balance)
	}

	for groupID, group := range groups {
		if group.Count == 0 {
			continue
		}
		group.GroupName = s.groupName(ctx, group.Kind, groupID)
		nodes := make([]ContactNode, 0, len(contacts[groupID]))
		for _, contact := range contacts[groupID] {
			nodes = append(nodes, *contact)
		}
		sort.Slice(nodes, func(i, j int) bool {
			return nodes[i].ContactName < nodes[j].ContactName
		})
		group.Contacts = nodes
		tree.Groups = append(tree.Groups, *group)
	}

	sort.Slice(tree.Groups, func(i, j int) bool {
		// The unassigned bucket sorts after every named group
		if (tree.Groups[i].GroupID == uuid.Nil) != (tree.Groups[j].GroupID == uuid.Nil) {
			return tree.Groups[j].GroupID == uuid.Nil
		}
		return tree.Groups[i].GroupName < tree.Groups[j].GroupName
	})
	return tree, nil
}

// groupName resolves the display name of an allocation root. A root that no
// longer resolves keeps its id-less placeholder rather than failing the
// whole tree.
func (s *TreeService) groupName(ctx context.Context, kind billing.AllocationKind, groupID uuid.UUID) string {
	switch kind {
	case billing.AllocationKindProject:
		if project, err := s.projectRepo.FindByID(ctx, groupID); err == nil {
			return project.Name
		}
	case billing.AllocationKindBuildingService, billing.AllocationKindBuildingOwner:
		if building, err := s.buildingRepo.FindByID(ctx, groupID); err == nil {
			return building.Name
		}
	case billing.AllocationKindStaff:
		if staff, err := s.staffRepo.FindByID(ctx, groupID); err == nil {
			return staff.Name
		}
	case billing.AllocationKindNone:
		return UnassignedGroupName
	}
	return "(deleted)"
}
