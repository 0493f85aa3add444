package billing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticResolver map[uuid.UUID]uuid.UUID

func (r staticResolver) BuildingOfProperty(propertyID uuid.UUID) (uuid.UUID, bool) {
	b, ok := r[propertyID]
	return b, ok
}

func TestAllocationKind_IsValid(t *testing.T) {
	tests := []struct {
		kind     AllocationKind
		expected bool
	}{
		{AllocationKindNone, true},
		{AllocationKindProject, true},
		{AllocationKindBuildingService, true},
		{AllocationKindBuildingOwner, true},
		{AllocationKindStaff, true},
		{AllocationKind("TENANT"), false},
		{AllocationKind(""), false},
	}

	for _, tc := range tests {
		t.Run(string(tc.kind), func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.kind.IsValid())
		})
	}
}

func TestAllocation_Constructors(t *testing.T) {
	t.Run("project", func(t *testing.T) {
		id := uuid.New()
		alloc, err := ProjectAllocation(id)
		require.NoError(t, err)
		assert.Equal(t, AllocationKindProject, alloc.Kind)
		assert.Equal(t, id, *alloc.ProjectID)
		assert.Nil(t, alloc.BuildingID)
		assert.Nil(t, alloc.StaffID)
		require.NoError(t, alloc.Validate())
	})

	t.Run("building service requires only building", func(t *testing.T) {
		alloc, err := BuildingServiceAllocation(uuid.New())
		require.NoError(t, err)
		assert.Nil(t, alloc.PropertyID)
		require.NoError(t, alloc.Validate())
	})

	t.Run("building owner requires property", func(t *testing.T) {
		_, err := BuildingOwnerAllocation(uuid.New(), uuid.Nil)
		require.Error(t, err)
	})

	t.Run("nil ids rejected", func(t *testing.T) {
		_, err := ProjectAllocation(uuid.Nil)
		require.Error(t, err)
		_, err = StaffAllocation(uuid.Nil)
		require.Error(t, err)
		_, err = BuildingServiceAllocation(uuid.Nil)
		require.Error(t, err)
	})
}

func TestAllocation_Validate_Exclusivity(t *testing.T) {
	project := uuid.New()
	staff := uuid.New()

	t.Run("project allocation with staff id rejected", func(t *testing.T) {
		alloc := Allocation{Kind: AllocationKindProject, ProjectID: &project, StaffID: &staff}
		require.Error(t, alloc.Validate())
	})

	t.Run("unassigned with any id rejected", func(t *testing.T) {
		alloc := Allocation{Kind: AllocationKindNone, ProjectID: &project}
		require.Error(t, alloc.Validate())
	})

	t.Run("unknown kind rejected", func(t *testing.T) {
		alloc := Allocation{Kind: AllocationKind("OTHER")}
		require.Error(t, alloc.Validate())
	})
}

func TestClassifyAllocation(t *testing.T) {
	projectID := uuid.New()
	buildingID := uuid.New()
	propertyID := uuid.New()
	staffID := uuid.New()
	resolver := staticResolver{propertyID: buildingID}

	t.Run("project root", func(t *testing.T) {
		alloc, err := ClassifyAllocation(&projectID, nil, nil, nil, resolver)
		require.NoError(t, err)
		assert.Equal(t, AllocationKindProject, alloc.Kind)
	})

	t.Run("staff root", func(t *testing.T) {
		alloc, err := ClassifyAllocation(nil, nil, nil, &staffID, resolver)
		require.NoError(t, err)
		assert.Equal(t, AllocationKindStaff, alloc.Kind)
	})

	t.Run("building only is service", func(t *testing.T) {
		alloc, err := ClassifyAllocation(nil, &buildingID, nil, nil, resolver)
		require.NoError(t, err)
		assert.Equal(t, AllocationKindBuildingService, alloc.Kind)
	})

	t.Run("property resolves its building", func(t *testing.T) {
		alloc, err := ClassifyAllocation(nil, nil, &propertyID, nil, resolver)
		require.NoError(t, err)
		assert.Equal(t, AllocationKindBuildingOwner, alloc.Kind)
		assert.Equal(t, buildingID, *alloc.BuildingID)
	})

	t.Run("property with mismatched building rejected", func(t *testing.T) {
		other := uuid.New()
		_, err := ClassifyAllocation(nil, &other, &propertyID, nil, resolver)
		require.Error(t, err)
	})

	t.Run("unresolvable property rejected", func(t *testing.T) {
		unknown := uuid.New()
		_, err := ClassifyAllocation(nil, nil, &unknown, nil, resolver)
		require.Error(t, err)
	})

	t.Run("more than one root rejected", func(t *testing.T) {
		_, err := ClassifyAllocation(&projectID, &buildingID, nil, nil, resolver)
		require.Error(t, err)
		_, err = ClassifyAllocation(&projectID, nil, nil, &staffID, resolver)
		require.Error(t, err)
	})

	t.Run("nothing set is unassigned", func(t *testing.T) {
		alloc, err := ClassifyAllocation(nil, nil, nil, nil, resolver)
		require.NoError(t, err)
		assert.Equal(t, AllocationKindNone, alloc.Kind)
		assert.Equal(t, uuid.Nil, alloc.GroupID())
	})
}

func TestAllocation_GroupID(t *testing.T) {
	buildingID := uuid.New()
	propertyID := uuid.New()
	alloc, err := BuildingOwnerAllocation(buildingID, propertyID)
	require.NoError(t, err)
	// Owner allocations group under the building, not the property
	assert.Equal(t, buildingID, alloc.GroupID())
}
