// Package coretest holds entity snapshots shared by the core package tests.
package coretest

import (
	"fmt"

	"github.com/okatech-org/admin.ga-sub001/internal/core/model"
)

// Registry returns a small, well-formed slice of the national hierarchy.
func Registry() []model.EntityRecord {
	return []model.EntityRecord{
		{ID: "PR", Code: "PR", Name: "Présidence de la République", Type: model.TypePresidency, Group: model.GroupSupremeInstitutions, Level: 0, IsPrincipal: true, City: "Libreville", Province: "Estuaire"},
		{ID: "PM", Code: "PM", Name: "Primature", Type: model.TypePrimeMinistry, Group: model.GroupSupremeInstitutions, Level: 1, ParentID: "PR", IsPrincipal: true, City: "Libreville", Province: "Estuaire"},
		{ID: "MINT", Code: "MIN-INT", Name: "Ministère de l'Intérieur", Type: model.TypeMinistry, Group: model.GroupMinistries, Level: 2, ParentID: "PM", IsPrincipal: true, City: "Libreville", Province: "Estuaire"},
		{ID: "MSAN", Code: "MIN-SAN", Name: "Ministère de la Santé", Type: model.TypeMinistry, Group: model.GroupMinistries, Level: 2, ParentID: "PM", IsPrincipal: true, City: "Libreville", Province: "Estuaire"},
		{ID: "SG-MINT", Code: "MIN-INT-SG", Name: "Secrétariat Général de l'Intérieur", Type: model.TypeGeneralSecretariat, Group: model.GroupMinistries, Level: 3, ParentID: "MINT", City: "Libreville", Province: "Estuaire"},
		{ID: "DGDI", Code: "DGDI", Name: "Direction Générale de la Documentation et de l'Immigration", Type: model.TypeGeneralDirectorate, Group: model.GroupDirectorates, Level: 3, ParentID: "MINT", City: "Libreville", Province: "Estuaire"},
		{ID: "GOV-HO", Code: "GOV-HO", Name: "Gouvernorat du Haut-Ogooué", Type: model.TypeGovernorate, Group: model.GroupTerritorialAdministrations, Level: 3, ParentID: "MINT", City: "Franceville", Province: "Haut-Ogooué"},
		{ID: "PREF-PASSA", Code: "PREF-PASSA", Name: "Préfecture de la Passa", Type: model.TypePrefecture, Group: model.GroupTerritorialAdministrations, Level: 4, ParentID: "GOV-HO", City: "Franceville", Province: "Haut-Ogooué"},
		{ID: "CHU-LBV", Code: "CHU-LBV", Name: "Centre Hospitalier Universitaire de Libreville", Type: model.TypePublicEstablishment, Group: model.GroupPublicEstablishments, Level: 3, ParentID: "MSAN", City: "Libreville", Province: "Estuaire", Phone: "+241 01 00 00 00"},
		{ID: "MAIRIE-POG", Code: "MAIRIE-POG", Name: "Mairie de Port-Gentil", Type: model.TypeMunicipality, Group: model.GroupLocalAuthorities, Level: 4, ParentID: "MINT", City: "Port-Gentil", Province: "Ogooué-Maritime", Email: "contact@mairie-pog.ga"},
	}
}

// Broken extends Registry with an orphan, a two-entity cycle hanging a
// child, a self-parent and a duplicate id.
func Broken() []model.EntityRecord {
	entities := Registry()
	return append(entities,
		model.EntityRecord{ID: "DIR-X", Code: "DIR-X", Name: "Direction fantôme", Type: model.TypeDirectorate, Group: model.GroupDirectorates, Level: 4, ParentID: "MISSING"},
		model.EntityRecord{ID: "CYC-A", Code: "CYC-A", Type: model.TypeAgency, Level: 5, ParentID: "CYC-B"},
		model.EntityRecord{ID: "CYC-B", Code: "CYC-B", Type: model.TypeAgency, Level: 6, ParentID: "CYC-A"},
		model.EntityRecord{ID: "CYC-CHILD", Code: "CYC-CHILD", Type: model.TypeCentralService, Level: 7, ParentID: "CYC-B"},
		model.EntityRecord{ID: "SELF", Code: "SELF", Type: model.TypeAgency, Level: 3, ParentID: "SELF"},
		model.EntityRecord{ID: "MSAN", Code: "MIN-SAN-DUP", Name: "Doublon", Level: 9},
	)
}

// ChildTypes is the type rotation used by Grid.
var ChildTypes = []model.EntityType{
	model.TypeDirectorate,
	model.TypeGeneralDirectorate,
	model.TypeAgency,
}

// Grid builds parents ministries, each with children entities. Child j of a
// parent has type ChildTypes[j % len(ChildTypes)].
func Grid(parents, children int) []model.EntityRecord {
	entities := make([]model.EntityRecord, 0, parents*(children+1))
	for i := 0; i < parents; i++ {
		pid := ParentID(i)
		entities = append(entities, model.EntityRecord{
			ID:    pid,
			Code:  pid,
			Name:  fmt.Sprintf("Ministère %d", i),
			Type:  model.TypeMinistry,
			Group: model.GroupMinistries,
			Level: 1,
		})
		for j := 0; j < children; j++ {
			cid := fmt.Sprintf("%s-C%02d", pid, j)
			entities = append(entities, model.EntityRecord{
				ID:       cid,
				Code:     cid,
				Name:     fmt.Sprintf("Entité %d.%d", i, j),
				Type:     ChildTypes[j%len(ChildTypes)],
				Group:    model.GroupDirectorates,
				Level:    2,
				ParentID: pid,
			})
		}
	}
	return entities
}

func ParentID(i int) string {
	return fmt.Sprintf("P%02d", i)
}
