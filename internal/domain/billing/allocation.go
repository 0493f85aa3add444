package billing

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/propledger/backend/internal/domain/shared"
)

// AllocationKind identifies the organizational bucket a document is charged
// against. A document carries exactly one allocation root; selecting a root
// discards the fields belonging to every other root.
type AllocationKind string

const (
	AllocationKindNone            AllocationKind = "NONE"
	AllocationKindProject         AllocationKind = "PROJECT"
	AllocationKindBuildingService AllocationKind = "BUILDING_SERVICE"
	AllocationKindBuildingOwner   AllocationKind = "BUILDING_OWNER"
	AllocationKindStaff           AllocationKind = "STAFF"
)

// IsValid checks if the kind is a valid AllocationKind
func (k AllocationKind) IsValid() bool {
	switch k {
	case AllocationKindNone, AllocationKindProject, AllocationKindBuildingService,
		AllocationKindBuildingOwner, AllocationKindStaff:
		return true
	}
	return false
}

// String returns the string representation of AllocationKind
func (k AllocationKind) String() string {
	return string(k)
}

// IsBuilding returns true for the two building-rooted kinds
func (k AllocationKind) IsBuilding() bool {
	return k == AllocationKindBuildingService || k == AllocationKindBuildingOwner
}

// Allocation is the tagged union of allocation roots. Only the ids belonging
// to the active kind are set; the zero value is the unassigned allocation.
type Allocation struct {
	Kind       AllocationKind `json:"kind"`
	ProjectID  *uuid.UUID     `json:"project_id,omitempty"`
	BuildingID *uuid.UUID     `json:"building_id,omitempty"`
	PropertyID *uuid.UUID     `json:"property_id,omitempty"`
	StaffID    *uuid.UUID     `json:"staff_id,omitempty"`
}

// UnassignedAllocation returns the allocation of a document charged to no
// organizational bucket
func UnassignedAllocation() Allocation {
	return Allocation{Kind: AllocationKindNone}
}

// ProjectAllocation charges a document against a project
func ProjectAllocation(projectID uuid.UUID) (Allocation, error) {
	if projectID == uuid.Nil {
		return Allocation{}, shared.NewDomainError("INVALID_ALLOCATION", "Project ID cannot be empty")
	}
	return Allocation{Kind: AllocationKindProject, ProjectID: &projectID}, nil
}

// BuildingServiceAllocation charges a document against a building's shared
// services. Only the building is required.
func BuildingServiceAllocation(buildingID uuid.UUID) (Allocation, error) {
	if buildingID == uuid.Nil {
		return Allocation{}, shared.NewDomainError("INVALID_ALLOCATION", "Building ID cannot be empty")
	}
	return Allocation{Kind: AllocationKindBuildingService, BuildingID: &buildingID}, nil
}

// BuildingOwnerAllocation charges a document against a specific owned
// property within a building. The property must belong to the building;
// callers resolve that through BuildingResolver before constructing.
func BuildingOwnerAllocation(buildingID, propertyID uuid.UUID) (Allocation, error) {
	if buildingID == uuid.Nil {
		return Allocation{}, shared.NewDomainError("INVALID_ALLOCATION", "Building ID cannot be empty")
	}
	if propertyID == uuid.Nil {
		return Allocation{}, shared.NewDomainError("INVALID_ALLOCATION", "Property ID cannot be empty for owner allocation")
	}
	return Allocation{Kind: AllocationKindBuildingOwner, BuildingID: &buildingID, PropertyID: &propertyID}, nil
}

// StaffAllocation charges a document against a staff member
func StaffAllocation(staffID uuid.UUID) (Allocation, error) {
	if staffID == uuid.Nil {
		return Allocation{}, shared.NewDomainError("INVALID_ALLOCATION", "Staff ID cannot be empty")
	}
	return Allocation{Kind: AllocationKindStaff, StaffID: &staffID}, nil
}

// Validate enforces the save-time exclusivity invariant: the ids present
// must be exactly the ids the kind requires
func (a Allocation) Validate() error {
	switch a.Kind {
	case AllocationKindNone:
		if a.ProjectID != nil || a.BuildingID != nil || a.PropertyID != nil || a.StaffID != nil {
			return shared.NewDomainError("INVALID_ALLOCATION", "Unassigned allocation cannot carry ids")
		}
	case AllocationKindProject:
		if a.ProjectID == nil || *a.ProjectID == uuid.Nil {
			return shared.NewDomainError("INVALID_ALLOCATION", "Project allocation requires a project ID")
		}
		if a.BuildingID != nil || a.PropertyID != nil || a.StaffID != nil {
			return shared.NewDomainError("INVALID_ALLOCATION", "Project allocation cannot carry building or staff ids")
		}
	case AllocationKindBuildingService:
		if a.BuildingID == nil || *a.BuildingID == uuid.Nil {
			return shared.NewDomainError("INVALID_ALLOCATION", "Building service allocation requires a building ID")
		}
		if a.ProjectID != nil || a.PropertyID != nil || a.StaffID != nil {
			return shared.NewDomainError("INVALID_ALLOCATION", "Building service allocation cannot carry project, property or staff ids")
		}
	case AllocationKindBuildingOwner:
		if a.BuildingID == nil || *a.BuildingID == uuid.Nil {
			return shared.NewDomainError("INVALID_ALLOCATION", "Owner allocation requires a building ID")
		}
		if a.PropertyID == nil || *a.PropertyID == uuid.Nil {
			return shared.NewDomainError("INVALID_ALLOCATION", "Owner allocation requires a property ID")
		}
		if a.ProjectID != nil || a.StaffID != nil {
			return shared.NewDomainError("INVALID_ALLOCATION", "Owner allocation cannot carry project or staff ids")
		}
	case AllocationKindStaff:
		if a.StaffID == nil || *a.StaffID == uuid.Nil {
			return shared.NewDomainError("INVALID_ALLOCATION", "Staff allocation requires a staff ID")
		}
		if a.ProjectID != nil || a.BuildingID != nil || a.PropertyID != nil {
			return shared.NewDomainError("INVALID_ALLOCATION", "Staff allocation cannot carry project or building ids")
		}
	default:
		return shared.NewDomainError("INVALID_ALLOCATION", fmt.Sprintf("Unknown allocation kind %q", a.Kind))
	}
	return nil
}

// GroupID returns the id of the allocation root, used as the grouping key in
// rollup trees. Returns uuid.Nil for unassigned documents.
func (a Allocation) GroupID() uuid.UUID {
	switch a.Kind {
	case AllocationKindProject:
		return *a.ProjectID
	case AllocationKindBuildingService, AllocationKindBuildingOwner:
		return *a.BuildingID
	case AllocationKindStaff:
		return *a.StaffID
	}
	return uuid.Nil
}

// BuildingResolver looks up the building a property belongs to
type BuildingResolver interface {
	BuildingOfProperty(propertyID uuid.UUID) (uuid.UUID, bool)
}

// ClassifyAllocation reconstructs the tagged allocation from the stored
// optional-field shape. A property with no building is resolved through the
// resolver; a property whose resolved building differs from the stored
// building is rejected.
func ClassifyAllocation(projectID, buildingID, propertyID, staffID *uuid.UUID, resolver BuildingResolver) (Allocation, error) {
	set := 0
	if projectID != nil && *projectID != uuid.Nil {
		set++
	}
	if (buildingID != nil && *buildingID != uuid.Nil) || (propertyID != nil && *propertyID != uuid.Nil) {
		set++
	}
	if staffID != nil && *staffID != uuid.Nil {
		set++
	}
	if set > 1 {
		return Allocation{}, shared.NewDomainError("INVALID_ALLOCATION", "Document carries ids from more than one allocation root")
	}

	switch {
	case projectID != nil && *projectID != uuid.Nil:
		return ProjectAllocation(*projectID)
	case staffID != nil && *staffID != uuid.Nil:
		return StaffAllocation(*staffID)
	case propertyID != nil && *propertyID != uuid.Nil:
		resolved := uuid.Nil
		if resolver != nil {
			if b, ok := resolver.BuildingOfProperty(*propertyID); ok {
				resolved = b
			}
		}
		if buildingID != nil && *buildingID != uuid.Nil {
			if resolved != uuid.Nil && resolved != *buildingID {
				return Allocation{}, shared.NewDomainError("INVALID_ALLOCATION", "Property does not belong to the selected building")
			}
			return BuildingOwnerAllocation(*buildingID, *propertyID)
		}
		if resolved == uuid.Nil {
			return Allocation{}, shared.NewDomainError("INVALID_ALLOCATION", "Property's building could not be resolved")
		}
		return BuildingOwnerAllocation(resolved, *propertyID)
	case buildingID != nil && *buildingID != uuid.Nil:
		return BuildingServiceAllocation(*buildingID)
	}
	return UnassignedAllocation(), nil
}

// Value implements driver.Valuer for JSONB storage
func (a Allocation) Value() (driver.Value, error) {
	if a.Kind == "" {
		a.Kind = AllocationKindNone
	}
	return json.Marshal(a)
}

// Scan implements sql.Scanner for JSONB retrieval
func (a *Allocation) Scan(value interface{}) error {
	if value == nil {
		*a = UnassignedAllocation()
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan Allocation: unsupported type")
	}
	if len(bytes) == 0 {
		*a = UnassignedAllocation()
		return nil
	}
	return json.Unmarshal(bytes, a)
}
