package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	catalogModel "edupath/internal/catalog/models"
	id "edupath/pkg/domain"
)

// Seed loads the bundled Cameroonian catalog into an empty store. It is used
// by the server when no external catalog is configured, and by tests.
func Seed(ctx context.Context, s *InMemory) error {
	now := time.Now().UTC()

	uy1 := catalogModel.Institution{
		ID:                  id.InstitutionID(uuid.New()),
		Code:                "UY1",
		Name:                "University of Yaoundé I",
		NameFr:              "Université de Yaoundé I",
		Type:                "public",
		City:                "Yaoundé",
		Region:              "Centre",
		Website:             "https://www.uy1.uninet.cm",
		LanguageInstruction: "bilingual",
		EstablishedYear:     1962,
		IsActive:            true,
		CreatedAt:           now,
	}
	uds := catalogModel.Institution{
		ID:                  id.InstitutionID(uuid.New()),
		Code:                "UDS",
		Name:                "University of Douala",
		NameFr:              "Université de Douala",
		Type:                "public",
		City:                "Douala",
		Region:              "Littoral",
		Website:             "https://www.univ-douala.com",
		LanguageInstruction: "bilingual",
		EstablishedYear:     1977,
		IsActive:            true,
		CreatedAt:           now,
	}
	ub := catalogModel.Institution{
		ID:                  id.InstitutionID(uuid.New()),
		Code:                "UB",
		Name:                "University of Bamenda",
		NameFr:              "Université de Bamenda",
		Type:                "public",
		City:                "Bamenda",
		Region:              "North West",
		Website:             "https://www.uniba.cm",
		LanguageInstruction: "english",
		EstablishedYear:     2011,
		IsActive:            true,
		CreatedAt:           now,
	}

	for _, inst := range []catalogModel.Institution{uy1, uds, ub} {
		if err := s.PutInstitution(ctx, inst); err != nil {
			return err
		}
	}

	programs := []catalogModel.Program{
		{
			ID:               id.ProgramID(uuid.New()),
			InstitutionID:    uy1.ID,
			Code:             "UY1_CS_BSC",
			Name:             "Bachelor of Science in Computer Science",
			NameFr:           "Licence en Informatique",
			DegreeType:       "bachelor",
			DurationYears:    3,
			Faculty:          "Faculty of Science",
			Department:       "Computer Science",
			MinOLevelPoints:  9,
			MinALevelPoints:  6,
			MinFrenchAverage: 12.0,
			RequiredSubjects: []string{"Mathematics", "Physics", "Chemistry"},
			Description:      "A comprehensive program in computer science covering programming, algorithms, and system design.",
			CareerProspects:  []string{"Software Developer", "System Analyst", "IT Consultant"},
			TuitionFeeFCFA:   50000,
			LanguageInstruction: "bilingual",
			IsActive:            true,
			CreatedAt:           now,
		},
		{
			ID:                   id.ProgramID(uuid.New()),
			InstitutionID:        uy1.ID,
			Code:                 "UY1_MED_MD",
			Name:                 "Doctor of Medicine",
			NameFr:               "Doctorat en Médecine",
			DegreeType:           "doctorate",
			DurationYears:        7,
			Faculty:              "Faculty of Medicine and Biomedical Sciences",
			Department:           "Medicine",
			MinALevelPoints:      12,
			MinFrenchAverage:     15.0,
			RequiredSubjects:     []string{"Biology", "Chemistry", "Physics", "Mathematics"},
			Description:          "Medical degree program preparing students for medical practice.",
			CareerProspects:      []string{"Medical Doctor", "Surgeon", "Medical Researcher"},
			TuitionFeeFCFA:       200000,
			IsCompetitive:        true,
			EntranceExamRequired: true,
			LanguageInstruction:  "bilingual",
			IsActive:             true,
			CreatedAt:            now,
		},
		{
			ID:               id.ProgramID(uuid.New()),
			InstitutionID:    uds.ID,
			Code:             "UDS_BUS_BSC",
			Name:             "Bachelor of Science in Business Administration",
			NameFr:           "Licence en Administration des Affaires",
			DegreeType:       "bachelor",
			DurationYears:    3,
			Faculty:          "Faculty of Economics and Management",
			Department:       "Business Administration",
			MinOLevelPoints:  6,
			MinALevelPoints:  4,
			MinFrenchAverage: 10.0,
			RequiredSubjects: []string{"Mathematics", "Economics"},
			Description:      "Business administration program focusing on management and entrepreneurship.",
			CareerProspects:  []string{"Business Manager", "Entrepreneur", "Financial Analyst"},
			TuitionFeeFCFA:   75000,
			LanguageInstruction: "bilingual",
			IsActive:            true,
			CreatedAt:           now,
		},
		{
			ID:               id.ProgramID(uuid.New()),
			InstitutionID:    ub.ID,
			Code:             "UB_ENG_BSC",
			Name:             "Bachelor of Engineering",
			NameFr:           "Licence en Ingénierie",
			DegreeType:       "bachelor",
			DurationYears:    4,
			Faculty:          "Faculty of Engineering and Technology",
			Department:       "Engineering",
			MinALevelPoints:  8,
			RequiredSubjects: []string{"Mathematics", "Physics", "Chemistry"},
			Description:      "Engineering program with specializations in various engineering disciplines.",
			CareerProspects:  []string{"Engineer", "Technical Consultant", "Project Manager"},
			TuitionFeeFCFA:   100000,
			LanguageInstruction: "english",
			IsActive:            true,
			CreatedAt:           now,
		},
	}

	for _, p := range programs {
		if err := s.PutProgram(ctx, p); err != nil {
			return err
		}
	}
	return nil
}
