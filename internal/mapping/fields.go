package mapping

// Claves canónicas compartidas por el resto del sistema.
const (
	KeyID                = "id"
	KeyArea              = "area"
	KeyRole              = "rol"
	KeyIntent            = "intencion_salida"
	KeyIntentAux         = "intencion_salida_aux"
	KeyStayPreference    = "preferencia_quedar"
	KeySatisfaction      = "satisfaccion_general"
	KeyCompensation      = "compensacion"
	KeyBossRespect       = "jefe_respeto"
	KeyBossTrust         = "jefe_confia"
	KeyGrowth            = "crecimiento"
	KeyWorkload          = "carga_laboral"
	KeyCommunication     = "comunicacion"
	KeyRecognition       = "reconocimiento"
	KeyRatingReason      = "razon_calificacion"
	KeyPossibleReasons   = "razones_posible_salida"
	KeyChangeToStay      = "cambio_para_quedarte"
	KeyAdditionalComment = "comentario_adicional"
	KeyLeaveReason       = "motivo_salida"
	KeyOtherFactors      = "otros_factores"
	KeyRetentionFixes    = "mejoras_retencion"
	KeyFinalSuggestion   = "sugerencia_final"
	KeyHeadcount         = "headcount"
	KeyRotation6m        = "rotacion_6m"
	KeyHRHeadcount       = "hr_headcount"
	KeyMonthlyOpenings   = "vacantes_mes"
	KeyHardProfiles      = "perfiles_dificiles"
	KeyImmediateActions  = "acciones_6m"
	KeyTimestamp         = "marca"
)

// Active es la encuesta a planta activa: intención de salida y drivers.
var Active = FieldSet{
	Name: "activos",
	Required: []FieldSpec{
		{KeyID, []string{"Marca temporal", "id", "documento", "employee id", "cédula", "cedula"}},
		{KeyArea, []string{"¿En qué área trabajas?", "area", "área", "departamento"}},
		{KeyRole, []string{"¿En qué cargo trabajas?", "rol", "cargo", "puesto", "title"}},
		{KeyIntent, []string{"Estoy pensando en dejar la empresa en los próximos 12 meses."}},
	},
	Optional: []FieldSpec{
		{KeyIntentAux, []string{"En los últimos 3 meses, ¿has considerado o explorado oportunidades laborales fuera de la empresa?"}},
		{KeyStayPreference, []string{"Si otra empresa me ofreciera un trabajo similar, preferiría quedarme aquí."}},

		{KeySatisfaction, []string{"En una escala de 0 a 10, ¿Qué probabilidad hay de que recomiendes a un amigo trabajar en esta empresa?"}},

		{"autonomia", []string{"Siento que tengo la autonomía necesaria para tomar decisiones en mi trabajo."}},
		{"respeto_inclusion", []string{"Me siento respetado(a) e incluido(a) en esta organización."}},
		{"confianza_liderazgo", []string{"Confío en la capacidad de liderazgo de quienes dirigen la organización."}},
		{"voz_opiniones", []string{"Mi voz y mis opiniones son escuchadas por la organización."}},
		{KeyCommunication, []string{"La comunicación dentro de la organización es clara, transparente y efectiva."}},
		{KeyWorkload, []string{"Mi carga de trabajo es razonable y puedo manejarla sin exceso de estrés."}},
		{"desconexion", []string{"Tengo la posibilidad de desconectarme y descansar fuera del horario laboral."}},
		{"claridad_funciones", []string{"Sé claramente cuáles son mis funciones y lo que se espera de mí."}},
		{"herramientas", []string{"Cuento con las herramientas y recursos necesarios para hacer bien mi trabajo."}},
		{KeyGrowth, []string{"Tengo oportunidades reales de crecer y desarrollarme dentro de la empresa."}},
		{"feedback", []string{"En los últimos 3 meses he recibido retroalimentación que me ha ayudado a mejorar."}},
		{KeyBossRespect, []string{"Mi jefe me apoya y me respeta"}},
		{KeyBossTrust, []string{"Mi jefe confía en mi y valora mi trabajo"}},
		{KeyRecognition, []string{"En esta empresa se valora y reconoce cuando hago bien mi trabajo."}},
		{KeyCompensation, []string{"Considero que mi salario es justo frente al mercado laboral colombiano."}},
		{"beneficios_adecuados", []string{"Los beneficios que ofrece la empresa son adecuados."}},
		{"seguridad_psico", []string{"Siento que puedo dar mis ideas y opiniones sin temor a represalias."}},
		{"respeto_equipo", []string{"En mi equipo hay respeto e inclusión para todos."}},
		{"confianza_direccion", []string{"Confío en la dirección que esta tomando la empresa"}},
		{"motivacion", []string{"Me siento motivado/a para dar lo mejor de mi cada día"}},

		{KeyRatingReason, []string{"¿Cuál fue la razón principal de tu calificación anterior?"}},
		{KeyPossibleReasons, []string{"Si algún día decidieras dejar la empresa, ¿Cuáles serían las principales razones? (Máximo 3)"}},
		{KeyChangeToStay, []string{"Si pudieras cambiar una sola cosa en la empresa para quedarte por más tiempo, ¿Qué sería?"}},
		{KeyAdditionalComment, []string{"¿Quieres dejar algún comentario adicional que nos ayude a mejorar?"}},
	},
}

// Leaver es la encuesta de egreso.
var Leaver = FieldSet{
	Name: "egresos",
	Required: []FieldSpec{
		{KeyLeaveReason, []string{"¿Cuál es el motivo principal por el que decidiste irte de la empresa?", "motivo"}},
	},
	Optional: []FieldSpec{
		{KeyArea, []string{"¿En qué área trabajabas?", "area", "departamento"}},
		{KeyRole, []string{"¿En qué cargo trabajabas?", "rol", "cargo"}},
		{"antiguedad_meses", []string{"¿Cuánto tiempo estuviste en la empresa?", "antiguedad", "meses"}},
		{"nps", []string{"En una escala de 0 a 10, ¿Qué probabilidad hay de que recomiendes a un amigo trabajar en esta empresa?"}},
		{KeyOtherFactors, []string{"Además del motivo principal, ¿Qué otros factores influyeron en tu decisión? (Máximo 3)"}},
		{KeyRetentionFixes, []string{"¿Qué tres mejoras habrían hecho más probable que te quedaras en la empresa?"}},
		{KeyFinalSuggestion, []string{"¿Quieres dejarnos alguna sugerencia final para mejorar?"}},
	},
}

// HR es la encuesta de capacidades de Gestión Humana.
var HR = FieldSet{
	Name: "gestion_humana",
	Required: []FieldSpec{
		{KeyTimestamp, []string{"Marca temporal"}},
	},
	Optional: []FieldSpec{
		{KeyHeadcount, []string{"¿Cuántas personas trabajan en la organización actualmente?"}},
		{KeyRotation6m, []string{"¿Cual es el indice de rotación de tu roganización en los ultimos 6 meses?"}},
		{KeyHRHeadcount, []string{"¿Cuántas personas trabajan en el área de Gestión Humana?"}},
		{KeyMonthlyOpenings, []string{"En promedio, ¿Cuántas vacantes tienen abiertas cada mes?"}},
		{KeyHardProfiles, []string{"¿Cuáles son los perfiles o cargos más difíciles de cubrir?"}},

		{"dificultad_ajuste", []string{"En los procesos de selección hemos identificado dificultades para lograr que el perfil de los candidatos se ajuste a la complejidad real del cargo."}},
		{"sobrecalificados", []string{"En ocasiones contratamos personas sobre calificadas para cargos operativos (ej. con más estudios o experiencia de la necesaria)."}},
		{"subcalificados", []string{"En ocasiones contratamos personas sub calificadas para cargos que requieren mayor experiencia o competencias."}},
		{"ajuste_contribuye_rotacion", []string{"Considero que este desajuste entre perfil y cargo contribuye a la rotación de personal en la empresa."}},
		{"factores_desajuste", []string{"¿Qué factores crees que explican este desajuste?"}},

		{"indicadores_rotacion", []string{"En el área llevamos indicadores claros de rotación y los revisamos con frecuencia."}},
		{"medimos_tiempo_cobertura", []string{"Medimos el tiempo promedio para cubrir vacantes."}},
		{"medimos_costo_reemplazo", []string{"Medimos el costo de reemplazar personal."}},
		{"plan_retencion", []string{"Tenemos un plan formal de fidelización para los cargos más críticos."}},
		{"movilidad_interna", []string{"Contamos con políticas de movilidad interna para ofrecer nuevas oportunidades."}},
		{"revision_salarial_anual", []string{"Revisamos los salarios al menos una vez al año comparándolos con el mercado."}},
		{"flexibilidad_laboral", []string{"Ofrecemos flexibilidad laboral (teletrabajo, horarios flexibles) según el rol."}},
		{"encuestas_clima", []string{"Aplicamos encuestas de clima laboral y damos seguimiento a los resultados."}},

		{"causa_compensacion", []string{"Considero que la compensación es una de las principales causas de salida de la gente."}},
		{"causa_jefes", []string{"Considero que la relación con los jefes es una de las principales causas de salida."}},
		{"causa_sobrecarga", []string{"Considero que la sobrecarga laboral es una de las principales causas de salida."}},
		{"causa_proyeccion", []string{"Considero que la falta de proyección es una de las principales causas de salida."}},
		{"causa_modalidad", []string{"Considero que la modalidad de trabajo (remoto/presencial) es una de las principales causas de salida."}},

		{"eff_ajuste_salarios", []string{"Nuestras acciones actuales son efectivas para ajustar salarios cuando es necesario."}},
		{"eff_liderazgo", []string{"Nuestras acciones actuales son efectivas para desarrollar programas de liderazgo."}},
		{"eff_bienestar", []string{"Nuestras acciones actuales son efectivas para promover bienestar y salud mental."}},
		{"eff_reconocimiento", []string{"Nuestras acciones actuales son efectivas para reconocer el buen desempeño."}},
		{"eff_capacitacion", []string{"Nuestras acciones actuales son efectivas para dar oportunidades de capacitación y planes de carrera."}},

		{"usa_analitica", []string{"En la empresa usamos analítica de datos para predecir riesgos de salida."}},
		{"sponsorship_alta_direccion", []string{"La alta dirección participa activamente en las acciones de fidelización."}},

		{"identifico_quien_se_va", []string{"En los últimos 12 meses, ¿la empresa ha identificado qué tipo de personas están dejando la organización?"}},
		{"percepcion_rotacion", []string{"Consideras que en la mayoría de los casos la rotación actual de la empresa es"}},

		{KeyImmediateActions, []string{"Si tuvieras que priorizar tres acciones inmediatas para reducir la rotación en los próximos 6 meses, ¿Cuáles serían?"}},
	},
}
