package constants

/* ==========================
   DOCUMENT CATEGORIES (closed enum)
========================== */

type DocumentCategory string

const (
	DocPassport        DocumentCategory = "Passport"
	DocEducational     DocumentCategory = "Educational Documents"
	DocFinancial       DocumentCategory = "Financial Document & Affidavit of Support"
	DocGapJustify      DocumentCategory = "Gap Justification"
	DocAcceptance      DocumentCategory = "Acceptance"
	DocI20             DocumentCategory = "I20"
	DocDS160           DocumentCategory = "DS-160"
	DocSEVIS           DocumentCategory = "SEVIS confirmation"
	DocAppointment     DocumentCategory = "Appointment Confirmation"
	DocUniversityForms DocumentCategory = "University Affidavit Forms"
	DocOther           DocumentCategory = "Other"
)

// AllDocumentCategories in display order (matches the stage editor).
var AllDocumentCategories = []DocumentCategory{
	DocPassport,
	DocEducational,
	DocFinancial,
	DocGapJustify,
	DocAcceptance,
	DocI20,
	DocDS160,
	DocSEVIS,
	DocAppointment,
	DocUniversityForms,
	DocOther,
}

var validDocumentCategories = func() map[DocumentCategory]struct{} {
	m := make(map[DocumentCategory]struct{}, len(AllDocumentCategories))
	for _, c := range AllDocumentCategories {
		m[c] = struct{}{}
	}
	return m
}()

func IsValidDocumentCategory(c DocumentCategory) bool {
	_, ok := validDocumentCategories[c]
	return ok
}
