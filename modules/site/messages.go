package site

// User facing messages. The web client shows them verbatim.
const (
	msgAccessGranted        = "Acceso autorizado"
	msgWrongPassword        = "Contraseña incorrecta"
	msgPasswordUnset        = "Contraseña no configurada en el servidor"
	msgTooManyAttempts      = "Demasiados intentos fallidos. Espera %d segundos."
	msgAccessDenied         = "Acceso no autorizado"
	msgMissingFields        = "Faltan campos requeridos: to, subject, message"
	msgMailUnconfigured     = "Variables de entorno no configuradas"
	msgMailUnconfiguredHint = "Necesitas configurar MAIL_SENDER_EMAIL y ya sea MAIL_API_KEY o las credenciales SMTP"
	msgSendFailed           = "Error al enviar correo"
	msgUnknownProvider      = "Error desconocido del proveedor"
	msgSent                 = "Correo enviado exitosamente usando "
	msgInvalidRequest       = "Solicitud inválida"
	msgInternalError        = "Error interno del servidor"
)
