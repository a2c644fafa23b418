// Package atlas reads FSL-style atlas metadata XML.
//
// The document has a single root element whose direct <data> child holds the
// labels:
//
//	<atlas version="1.0">
//	  <header>
//	    <name>Harvard-Oxford Cortical Structural Atlas</name>
//	    <type>Probabilistic</type>
//	    <images>
//	      <imagefile>/HarvardOxford/HarvardOxford-cort-prob-2mm</imagefile>
//	      <summaryimagefile>/HarvardOxford/HarvardOxford-cort-maxprob-thr0-2mm</summaryimagefile>
//	    </images>
//	  </header>
//	  <data>
//	    <label index="0" x="48" y="94" z="35">Frontal Pole</label>
//	  </data>
//	</atlas>
//
// Labels are returned in document order. The header is optional and only
// informational.
package atlas
