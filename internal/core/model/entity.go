package model

// EntityType is the closed set of administrative unit kinds.
type EntityType string

const (
	TypePresidency          EntityType = "presidency"
	TypeVicePresidency      EntityType = "vice_presidency"
	TypePrimeMinistry       EntityType = "prime_ministry"
	TypeConstitutionalCourt EntityType = "constitutional_court"
	TypeNationalAssembly    EntityType = "national_assembly"
	TypeSenate              EntityType = "senate"
	TypeCourt               EntityType = "court"

	TypeMinistry         EntityType = "ministry"
	TypeDelegateMinistry EntityType = "delegate_ministry"

	// Internal divisions of a larger body
	TypeGeneralSecretariat EntityType = "general_secretariat"
	TypeCabinet            EntityType = "cabinet"
	TypeCentralDirectorate EntityType = "central_directorate"
	TypeCentralService     EntityType = "central_service"

	TypeGeneralDirectorate  EntityType = "general_directorate"
	TypeGeneralInspectorate EntityType = "general_inspectorate"
	TypeDirectorate         EntityType = "directorate"
	TypeAgency              EntityType = "agency"
	TypePublicEstablishment EntityType = "public_establishment"

	TypeGovernorate   EntityType = "governorate"
	TypePrefecture    EntityType = "prefecture"
	TypeSubPrefecture EntityType = "sub_prefecture"

	TypeMunicipality        EntityType = "municipality"
	TypeDepartmentalCouncil EntityType = "departmental_council"
	TypeEmbassy             EntityType = "embassy"
	TypeConsulate           EntityType = "consulate"
)

var entityTypes = map[EntityType]struct{}{
	TypePresidency: {}, TypeVicePresidency: {}, TypePrimeMinistry: {}, TypeConstitutionalCourt: {},
	TypeNationalAssembly: {}, TypeSenate: {}, TypeCourt: {},
	TypeMinistry: {}, TypeDelegateMinistry: {},
	TypeGeneralSecretariat: {}, TypeCabinet: {}, TypeCentralDirectorate: {}, TypeCentralService: {},
	TypeGeneralDirectorate: {}, TypeGeneralInspectorate: {}, TypeDirectorate: {}, TypeAgency: {}, TypePublicEstablishment: {},
	TypeGovernorate: {}, TypePrefecture: {}, TypeSubPrefecture: {},
	TypeMunicipality: {}, TypeDepartmentalCouncil: {}, TypeEmbassy: {}, TypeConsulate: {},
}

// Valid reports whether t belongs to the closed enumeration.
func (t EntityType) Valid() bool {
	_, ok := entityTypes[t]
	return ok
}

// IsInternalDivision matches sub-units that live inside a ministry or institution.
func (t EntityType) IsInternalDivision() bool {
	switch t {
	case TypeGeneralSecretariat, TypeCabinet, TypeCentralDirectorate, TypeCentralService:
		return true
	}
	return false
}

func (t EntityType) IsGeneralDirectorate() bool {
	return t == TypeGeneralDirectorate || t == TypeGeneralInspectorate
}

func (t EntityType) IsPrefecture() bool {
	switch t {
	case TypeGovernorate, TypePrefecture, TypeSubPrefecture:
		return true
	}
	return false
}

// Group is the coarse administrative classification of an entity.
type Group string

const (
	GroupSupremeInstitutions        Group = "supreme_institutions"
	GroupMinistries                 Group = "ministries"
	GroupDirectorates               Group = "directorates"
	GroupPublicEstablishments       Group = "public_establishments"
	GroupTerritorialAdministrations Group = "territorial_administrations"
	GroupLocalAuthorities           Group = "local_authorities"
	GroupJudiciary                  Group = "judiciary"
	GroupLegislature                Group = "legislature"
	GroupDiplomaticMissions         Group = "diplomatic_missions"

	// GroupUnspecified buckets records that carry no group in statistics.
	GroupUnspecified Group = "unspecified"
)

// TopAdministrativeTier is the group whose members report directly to the
// supreme institutions.
const TopAdministrativeTier = GroupMinistries

func (g Group) Valid() bool {
	switch g {
	case GroupSupremeInstitutions, GroupMinistries, GroupDirectorates, GroupPublicEstablishments,
		GroupTerritorialAdministrations, GroupLocalAuthorities, GroupJudiciary, GroupLegislature,
		GroupDiplomaticMissions:
		return true
	}
	return false
}

// EntityRecord is one administrative unit as supplied by the registry snapshot.
// ParentID is a weak lookup reference; it may point nowhere.
type EntityRecord struct {
	ID          string     `json:"id" yaml:"id" toml:"id"`
	Code        string     `json:"code" yaml:"code" toml:"code"`
	Name        string     `json:"name" yaml:"name" toml:"name"`
	Type        EntityType `json:"type" yaml:"type" toml:"type"`
	Group       Group      `json:"group" yaml:"group" toml:"group"`
	Level       int        `json:"hierarchical_level" yaml:"hierarchical_level" toml:"hierarchical_level"`
	ParentID    string     `json:"parent_id,omitempty" yaml:"parent_id,omitempty" toml:"parent_id,omitempty"`
	IsPrincipal bool       `json:"is_principal" yaml:"is_principal" toml:"is_principal"`
	City        string     `json:"city,omitempty" yaml:"city,omitempty" toml:"city,omitempty"`
	Province    string     `json:"province,omitempty" yaml:"province,omitempty" toml:"province,omitempty"`
	Phone       string     `json:"phone,omitempty" yaml:"phone,omitempty" toml:"phone,omitempty"`
	Email       string     `json:"email,omitempty" yaml:"email,omitempty" toml:"email,omitempty"`
}

func (e EntityRecord) HasParent() bool {
	return e.ParentID != ""
}
