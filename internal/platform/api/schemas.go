package api

import (
	"go.classcore.tech/internal/platform/authorization"
	"go.classcore.tech/internal/platform/validation"
)

// Structural schemas for every module, consumed by the handlers before
// any use case runs. Create lists required fields, update lists the
// updatable ones, add/remove list the membership fields.

var authSchema = validation.Schema{
	Module: authorization.ModuleAuthentication,
	Fields: map[authorization.Action][]string{
		authorization.ActionCreate: {"name", "email", "password", "role"},
		authorization.ActionUpdate: {"name", "password"},
	},
	UpdateObject: "dataToUpdate",
}

var tenantSchema = validation.Schema{
	Module: authorization.ModuleTenant,
	Fields: map[authorization.Action][]string{
		authorization.ActionUpdate: {"name", "address", "phone"},
	},
	UpdateObject: "dataToUpdate",
}

var studentSchema = validation.Schema{
	Module: authorization.ModuleStudent,
	Fields: map[authorization.Action][]string{
		authorization.ActionCreate: {"name", "email"},
		authorization.ActionUpdate: {"name", "classroom", "guardianPhone"},
	},
	UpdateObject: "dataToUpdate",
}

var teacherSchema = validation.Schema{
	Module: authorization.ModuleTeacher,
	Fields: map[authorization.Action][]string{
		authorization.ActionCreate: {"name", "email"},
		authorization.ActionUpdate: {"name", "specialty"},
	},
	UpdateObject: "dataToUpdate",
}

var subjectSchema = validation.Schema{
	Module: authorization.ModuleSubject,
	Fields: map[authorization.Action][]string{
		authorization.ActionCreate: {"name"},
		authorization.ActionUpdate: {"name", "teacherId"},
		authorization.ActionAdd:    {"id", "studentIds"},
		authorization.ActionRemove: {"id", "studentIds"},
	},
	UpdateObject: "dataToUpdate",
}

var lessonSchema = validation.Schema{
	Module: authorization.ModuleLesson,
	Fields: map[authorization.Action][]string{
		authorization.ActionCreate: {"subjectId", "teacherId", "startsAt"},
		authorization.ActionUpdate: {"room", "teacherId", "startsAt", "endsAt"},
		authorization.ActionAdd:    {"id", "studentIds"},
		authorization.ActionRemove: {"id", "studentIds"},
	},
	UpdateObject: "dataToUpdate",
}

var attendanceSchema = validation.Schema{
	Module: authorization.ModuleAttendance,
	Fields: map[authorization.Action][]string{
		authorization.ActionCreate: {"lessonId", "day"},
		authorization.ActionAdd:    {"id", "studentIds"},
		authorization.ActionRemove: {"id", "studentIds"},
	},
}

var administratorSchema = validation.Schema{
	Module: authorization.ModuleAdministrator,
	Fields: map[authorization.Action][]string{
		authorization.ActionCreate: {"name", "email"},
		authorization.ActionUpdate: {"name", "title"},
	},
	UpdateObject: "dataToUpdate",
}

var workerSchema = validation.Schema{
	Module: authorization.ModuleWorker,
	Fields: map[authorization.Action][]string{
		authorization.ActionCreate: {"name", "email"},
		authorization.ActionUpdate: {"name", "position"},
	},
	UpdateObject: "dataToUpdate",
}

var curriculumSchema = validation.Schema{
	Module: authorization.ModuleCurriculum,
	Fields: map[authorization.Action][]string{
		authorization.ActionCreate: {"name", "year"},
		authorization.ActionUpdate: {"name", "year", "subjectIds"},
	},
	UpdateObject: "dataToUpdate",
}

var scheduleSchema = validation.Schema{
	Module: authorization.ModuleSchedule,
	Fields: map[authorization.Action][]string{
		authorization.ActionCreate: {"name", "term"},
		authorization.ActionUpdate: {"name", "term", "lessonIds"},
	},
	UpdateObject: "dataToUpdate",
}

var eventSchema = validation.Schema{
	Module: authorization.ModuleEvent,
	Fields: map[authorization.Action][]string{
		authorization.ActionCreate: {"title", "day"},
		authorization.ActionUpdate: {"title", "description", "location", "day"},
	},
	UpdateObject: "dataToUpdate",
}

var evaluationSchema = validation.Schema{
	Module: authorization.ModuleEvaluation,
	Fields: map[authorization.Action][]string{
		authorization.ActionCreate: {"studentId", "subjectId", "period", "score"},
		authorization.ActionUpdate: {"score", "comment", "period"},
	},
	UpdateObject: "dataToUpdate",
}

var noteSchema = validation.Schema{
	Module: authorization.ModuleNote,
	Fields: map[authorization.Action][]string{
		authorization.ActionCreate: {"studentId", "body"},
		authorization.ActionUpdate: {"body"},
	},
	UpdateObject: "dataToUpdate",
}
