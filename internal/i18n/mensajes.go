package i18n

// Key identifies a translatable message.
type Key string

const (
	ErrConfig            Key = "errConfig"
	ErrAuthConfig        Key = "errAuthConfig"
	ErrConexion          Key = "errConexion"
	ErrInterno           Key = "errInterno"
	ErrIDInvalido        Key = "errIdInvalido"
	ErrCargaRegistros    Key = "errCargaRegistros"
	ErrNoEncontrada      Key = "errNoEncontrada"
	ErrClienteNoExiste   Key = "errClienteNoExiste"
	ErrDocumentoNoExiste Key = "errDocumentoNoExiste"
	ErrSinSeleccion      Key = "errSinSeleccion"
	ErrColumnaNoEditable Key = "errColumnaNoEditable"
	ErrValorInvalido     Key = "errValorInvalido"
	ErrSoloPapelera      Key = "errSoloPapelera"
	ErrNoEnPapelera      Key = "errNoEnPapelera"
	ErrSeleccionActiva   Key = "errSeleccionActiva"
	ErrPreviewRequerido  Key = "errPreviewRequerido"
	ErrTipoArchivo       Key = "errTipoArchivo"
	ErrArchivoGrande     Key = "errArchivoGrande"
	ErrTipoDocumento     Key = "errTipoDocumento"
	ErrCatalogo          Key = "errCatalogo"
	ErrNombreRequerido   Key = "errNombreRequerido"
	ErrDemasiados        Key = "errDemasiados"
	ErrNoAutenticado     Key = "errNoAutenticado"
	ErrPermisos          Key = "errPermisos"

	ErrCorreoRequerido  Key = "errCorreoRequerido"
	ErrClaveRequerida   Key = "errClaveRequerida"
	ErrClaveCorta       Key = "errClaveCorta"
	ErrCredenciales     Key = "errCredenciales"
	ErrCorreoRegistrado Key = "errCorreoRegistrado"

	ConfirmarEliminar  Key = "confirmarEliminar"
	ConfirmarVaciar    Key = "confirmarVaciar"
	ConfirmarDocumento Key = "confirmarDocumento"
	ConfirmarClientes  Key = "confirmarClientes"
	CrearCliente       Key = "crearCliente"
	ReservaCreada      Key = "reservaCreada"
	CambiosGuardados   Key = "cambiosGuardados"
	DocumentoSubido    Key = "documentoSubido"

	SeccionGeneral       Key = "seccionGeneral"
	SeccionComercial     Key = "seccionComercial"
	SeccionCarga         Key = "seccionCarga"
	SeccionNaviera       Key = "seccionNaviera"
	SeccionPlanta        Key = "seccionPlanta"
	SeccionDeposito      Key = "seccionDeposito"
	SeccionObservaciones Key = "seccionObservaciones"
	DiasTransito         Key = "diasTransito"
	ValorSi              Key = "valorSi"
	ValorNo              Key = "valorNo"
)

var messages = map[Locale]map[Key]string{
	ES: {
		ErrConfig:            "La aplicación no está configurada. Verifique las credenciales del servicio de datos.",
		ErrAuthConfig:        "Autenticación no configurada. Defina JWT_SECRET en el servidor.",
		ErrConexion:          "Error de conexión. Intente nuevamente.",
		ErrInterno:           "Error interno del servidor",
		ErrIDInvalido:        "ID inválido",
		ErrCargaRegistros:    "No se pudieron cargar los registros",
		ErrNoEncontrada:      "Operación no encontrada",
		ErrClienteNoExiste:   "Cliente no encontrado",
		ErrDocumentoNoExiste: "Documento no encontrado",
		ErrSinSeleccion:      "Seleccione al menos un registro",
		ErrColumnaNoEditable: "La columna no es editable",
		ErrValorInvalido:     "Valor inválido",
		ErrSoloPapelera:      "Solo se pueden eliminar definitivamente operaciones que están en la papelera",
		ErrNoEnPapelera:      "Alguna de las operaciones seleccionadas ya no está en la papelera",
		ErrSeleccionActiva:   "Alguna de las operaciones seleccionadas ya no está activa",
		ErrPreviewRequerido:  "Revise la vista previa y confirme antes de guardar",
		ErrTipoArchivo:       "Tipo de archivo no permitido. Solo PDF, XLS o XLSX.",
		ErrArchivoGrande:     "El archivo supera el tamaño máximo de %d MB",
		ErrTipoDocumento:     "Tipo de documento inválido",
		ErrCatalogo:          "Catálogo desconocido",
		ErrNombreRequerido:   "El nombre es obligatorio",
		ErrDemasiados:        "Demasiadas solicitudes. Intente nuevamente en un momento.",
		ErrNoAutenticado:     "Autenticación requerida",
		ErrPermisos:          "Permisos insuficientes",

		ErrCorreoRequerido:  "Correo requerido",
		ErrClaveRequerida:   "Contraseña requerida",
		ErrClaveCorta:       "La contraseña debe tener al menos 6 caracteres",
		ErrCredenciales:     "Correo o contraseña incorrectos",
		ErrCorreoRegistrado: "Este correo ya está registrado",

		ConfirmarEliminar:  "¿Eliminar permanentemente %d operación(es)? Esta acción no se puede deshacer.",
		ConfirmarVaciar:    "¿Vaciar la papelera? Se eliminarán %d operación(es) de forma permanente.",
		ConfirmarDocumento: "¿Eliminar este documento?",
		ConfirmarClientes:  "¿Eliminar %d cliente(s)?",
		CrearCliente:       "¿Crear el cliente \"%s\"?",
		ReservaCreada:      "Reserva creada correctamente",
		CambiosGuardados:   "Cambios guardados",
		DocumentoSubido:    "Documento subido",

		SeccionGeneral:       "General",
		SeccionComercial:     "Comercial",
		SeccionCarga:         "Carga",
		SeccionNaviera:       "Naviera",
		SeccionPlanta:        "Planta",
		SeccionDeposito:      "Depósito",
		SeccionObservaciones: "Observaciones",
		DiasTransito:         "%d días",
		ValorSi:              "Sí",
		ValorNo:              "No",
	},
	EN: {
		ErrConfig:            "The application is not configured. Check the data service credentials.",
		ErrAuthConfig:        "Authentication is not configured. Set JWT_SECRET on the server.",
		ErrConexion:          "Connection error. Please try again.",
		ErrInterno:           "Internal server error",
		ErrIDInvalido:        "Invalid ID",
		ErrCargaRegistros:    "Records could not be loaded",
		ErrNoEncontrada:      "Operation not found",
		ErrClienteNoExiste:   "Client not found",
		ErrDocumentoNoExiste: "Document not found",
		ErrSinSeleccion:      "Select at least one record",
		ErrColumnaNoEditable: "The column is not editable",
		ErrValorInvalido:     "Invalid value",
		ErrSoloPapelera:      "Only operations in the trash can be permanently deleted",
		ErrNoEnPapelera:      "Some of the selected operations are no longer in the trash",
		ErrSeleccionActiva:   "Some of the selected operations are no longer active",
		ErrPreviewRequerido:  "Review the preview and confirm before saving",
		ErrTipoArchivo:       "File type not allowed. Only PDF, XLS or XLSX.",
		ErrArchivoGrande:     "The file exceeds the maximum size of %d MB",
		ErrTipoDocumento:     "Invalid document type",
		ErrCatalogo:          "Unknown catalog",
		ErrNombreRequerido:   "Name is required",
		ErrDemasiados:        "Too many requests. Please try again shortly.",
		ErrNoAutenticado:     "Authentication required",
		ErrPermisos:          "Insufficient permissions",

		ErrCorreoRequerido:  "Email required",
		ErrClaveRequerida:   "Password required",
		ErrClaveCorta:       "Password must be at least 6 characters",
		ErrCredenciales:     "Incorrect email or password",
		ErrCorreoRegistrado: "This email is already registered",

		ConfirmarEliminar:  "Permanently delete %d operation(s)? This cannot be undone.",
		ConfirmarVaciar:    "Empty the trash? %d operation(s) will be permanently deleted.",
		ConfirmarDocumento: "Delete this document?",
		ConfirmarClientes:  "Delete %d client(s)?",
		CrearCliente:       "Create client \"%s\"?",
		ReservaCreada:      "Booking created successfully",
		CambiosGuardados:   "Changes saved",
		DocumentoSubido:    "Document uploaded",

		SeccionGeneral:       "General",
		SeccionComercial:     "Commercial",
		SeccionCarga:         "Cargo",
		SeccionNaviera:       "Carrier",
		SeccionPlanta:        "Plant",
		SeccionDeposito:      "Depot",
		SeccionObservaciones: "Notes",
		DiasTransito:         "%d days",
		ValorSi:              "Yes",
		ValorNo:              "No",
	},
}
