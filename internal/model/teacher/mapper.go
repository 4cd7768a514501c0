package teacher

// ToReadOnlyDTO projects an entity onto the output shape.
func ToReadOnlyDTO(t *Teacher) TeacherReadOnlyDTO {
	return TeacherReadOnlyDTO{
		ID:        t.ID,
		Firstname: t.Firstname,
		Lastname:  t.Lastname,
	}
}

// ToReadOnlyDTOs keeps the input order and never returns nil, so an empty
// result encodes as [] rather than null.
func ToReadOnlyDTOs(teachers []Teacher) []TeacherReadOnlyDTO {
	dtos := make([]TeacherReadOnlyDTO, 0, len(teachers))
	for i := range teachers {
		dtos = append(dtos, ToReadOnlyDTO(&teachers[i]))
	}
	return dtos
}
